package utils

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"
)

const (
	// 2024-01-01 00:00:00 UTC，单位毫秒
	snowflakeEpochMilli int64 = 1704067200000

	nodeBits uint8 = 10
	seqBits  uint8 = 12

	maxNodeID int64 = -1 ^ (-1 << nodeBits)
	maxSeq    int64 = -1 ^ (-1 << seqBits)

	nodeShift uint8 = seqBits
	timeShift uint8 = nodeBits + seqBits
)

// Snowflake 生成战役 id：同一台机器上多次开局、多个存档槽位也不会撞。
type Snowflake struct {
	mu     sync.Mutex
	nodeID int64
	lastTS int64
	seq    int64
	now    func() int64
}

func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 || nodeID > maxNodeID {
		return nil, fmt.Errorf("snowflake node id out of range: %d", nodeID)
	}
	return &Snowflake{nodeID: nodeID, now: func() int64 { return time.Now().UnixMilli() }}, nil
}

func (s *Snowflake) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now()
	if ts < s.lastTS {
		// 时钟回拨时不回退，保持单调递增。
		ts = s.lastTS
	}

	if ts == s.lastTS {
		s.seq = (s.seq + 1) & maxSeq
		if s.seq == 0 {
			ts = s.waitNextMillisecond(s.lastTS)
		}
	} else {
		s.seq = 0
	}

	s.lastTS = ts
	return ((ts - snowflakeEpochMilli) << timeShift) | (s.nodeID << nodeShift) | s.seq
}

func (s *Snowflake) waitNextMillisecond(lastTS int64) int64 {
	ts := s.now()
	for ts <= lastTS {
		ts = s.now()
	}
	return ts
}

var (
	defaultSnowflakeOnce sync.Once
	defaultSnowflake     *Snowflake
	defaultSnowflakeErr  error
)

// DefaultSnowflake 单机游戏固定 node=1。
func DefaultSnowflake() (*Snowflake, error) {
	defaultSnowflakeOnce.Do(func() {
		defaultSnowflake, defaultSnowflakeErr = NewSnowflake(1)
	})
	return defaultSnowflake, defaultSnowflakeErr
}

// NextCampaignID 返回字符串形式（十进制）的战役 id，存档里按字符串保存。
func NextCampaignID() (string, error) {
	gen, err := DefaultSnowflake()
	if err != nil {
		return "", err
	}
	if gen == nil {
		return "", errors.New("snowflake generator is nil")
	}
	return strconv.FormatInt(gen.NextID(), 10), nil
}
