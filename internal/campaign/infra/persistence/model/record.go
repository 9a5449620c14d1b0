package model

import "time"

// SaveRecord mysql 的一行：列出存档时用到的字段单独成列，完整文档放 data。
type SaveRecord struct {
	Slot       string    `gorm:"column:slot;type:varchar(64);primaryKey;not null;comment:槽位"`
	CampaignID string    `gorm:"column:campaign_id;type:varchar(32);not null;index;comment:战役id"`
	Year       int       `gorm:"column:year;type:int;not null;comment:年份"`
	Turn       int       `gorm:"column:turn;type:int;not null;comment:回合"`
	EventID    string    `gorm:"column:event_id;type:varchar(64);not null;comment:当前事件"`
	Data       string    `gorm:"column:data;type:mediumtext;not null;comment:存档JSON"`
	SavedAt    time.Time `gorm:"column:saved_at;not null;comment:存档时间"`
}

func (r *SaveRecord) TableName() string {
	return "campaign_saves"
}

// NewSaveRecord 把文档序列化进一行。
func NewSaveRecord(d SaveDoc) (*SaveRecord, error) {
	data, err := MarshalDoc(d)
	if err != nil {
		return nil, err
	}
	return &SaveRecord{
		Slot:       d.Slot,
		CampaignID: d.CampaignID,
		Year:       d.Year,
		Turn:       d.Turn,
		EventID:    d.CurrentEvent,
		Data:       string(data),
		SavedAt:    d.SavedAt,
	}, nil
}
