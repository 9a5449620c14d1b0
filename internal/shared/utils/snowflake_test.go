package utils

import (
	"strconv"
	"testing"
)

func TestSnowflake_单调递增且不重复(t *testing.T) {
	s, err := NewSnowflake(3)
	if err != nil {
		t.Fatalf("NewSnowflake err=%v", err)
	}
	seen := make(map[int64]struct{}, 5000)
	var last int64
	for i := 0; i < 5000; i++ {
		id := s.NextID()
		if id <= last {
			t.Fatalf("期望递增，第 %d 个 id=%d last=%d", i, id, last)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("重复 id=%d", id)
		}
		seen[id] = struct{}{}
		last = id
	}
}

func TestSnowflake_时钟回拨不回退(t *testing.T) {
	s, _ := NewSnowflake(1)
	ts := snowflakeEpochMilli + 10_000
	s.now = func() int64 { return ts }
	first := s.NextID()
	ts -= 5_000
	second := s.NextID()
	if second <= first {
		t.Fatalf("期望回拨后仍递增 first=%d second=%d", first, second)
	}
}

func TestSnowflake_节点越界(t *testing.T) {
	if _, err := NewSnowflake(maxNodeID + 1); err == nil {
		t.Fatalf("期望节点越界报错")
	}
}

func TestNextCampaignID_十进制字符串(t *testing.T) {
	id, err := NextCampaignID()
	if err != nil {
		t.Fatalf("NextCampaignID err=%v", err)
	}
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		t.Fatalf("期望十进制字符串 id=%q", id)
	}
}
