package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrap_保留cause和分类(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap("file.SaveRepo.Save", KindInfra, cause, map[string]any{"slot": "a"})
	if !errors.Is(err, cause) {
		t.Fatalf("期望 cause 链不丢，err=%v", err)
	}
	if KindOf(fmt.Errorf("save: %w", err)) != KindInfra {
		t.Fatalf("期望沿链找到 KindInfra")
	}
	if Wrap("op", KindInfra, nil, nil) != nil {
		t.Fatalf("期望 nil cause 返回 nil")
	}
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Fatalf("期望普通错误为 KindUnknown")
	}
}
