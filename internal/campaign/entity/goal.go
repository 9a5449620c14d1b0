package entity

// GoalKind 玩家自定义目标的类型，由描述里的关键词推断。
type GoalKind string

const (
	GoalConquest   GoalKind = "conquest"
	GoalDiplomatic GoalKind = "diplomatic"
	GoalEconomic   GoalKind = "economic"
	GoalMilitary   GoalKind = "military"
	GoalTemporal   GoalKind = "temporal"
	GoalCustom     GoalKind = "custom"
)

type Goal struct {
	ID          string   `json:"id" bson:"id"`
	Description string   `json:"description" bson:"description"`
	Kind        GoalKind `json:"kind" bson:"kind"`
	// Target 数值目标：领土数、盟友数、金币、兵力或年份；自定义目标为 0。
	Target    int    `json:"target" bson:"target"`
	Subject   string `json:"subject,omitempty" bson:"subject,omitempty"`
	Progress  int    `json:"progress" bson:"progress"`
	Completed bool   `json:"completed" bson:"completed"`
	CreatedAt int    `json:"created_turn" bson:"created_turn"`
}
