//go:build !ci

// Package sound plays short notification cues for chat events.
package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"

	"github.com/palemoky/yewchat/internal/logger"
)

// Cue names, matched against file base names in the sound directory.
const (
	CueMessage = "message"
	CueJoin    = "join"
)

const sampleRate = beep.SampleRate(44100)

var speakerOnce sync.Once

// Player 提示音播放器
type Player struct {
	dir     string
	muted   bool
	enabled bool

	mu      sync.RWMutex
	buffers map[string]*beep.Buffer
}

// NewPlayer 创建播放器，dir 为 mp3/wav 文件所在目录
func NewPlayer(dir string, muted bool) *Player {
	return &Player{
		dir:     dir,
		muted:   muted,
		buffers: make(map[string]*beep.Buffer),
	}
}

// Init 初始化扬声器并加载提示音；静音时什么也不做
func (p *Player) Init() error {
	if p.muted {
		return nil
	}

	var initErr error
	speakerOnce.Do(func() {
		// 较小的缓冲区降低延迟
		initErr = speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	})
	if initErr != nil {
		return fmt.Errorf("init speaker: %w", initErr)
	}

	if err := p.load(); err != nil {
		return err
	}
	p.enabled = true
	return nil
}

func (p *Player) load() error {
	files, err := os.ReadDir(p.dir)
	if err != nil {
		// 目录不存在时静默
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read sound dir: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}
		buf, err := decodeFile(filepath.Join(p.dir, name), ext)
		if err != nil {
			logger.LogError("load sound %s: %v", name, err)
			continue
		}
		p.mu.Lock()
		p.buffers[strings.TrimSuffix(name, filepath.Ext(name))] = buf
		p.mu.Unlock()
	}
	return nil
}

func decodeFile(path, ext string) (*beep.Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = streamer.Close() }()

	var resampled beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		resampled = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buffer := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 4})
	buffer.Append(resampled)
	return buffer, nil
}

// Has 是否加载了某个提示音
func (p *Player) Has(cue string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.buffers[cue]
	return ok
}

// Play 播放提示音，未加载或静音时忽略
func (p *Player) Play(cue string) {
	if !p.enabled || p.muted {
		return
	}
	p.mu.RLock()
	buffer, ok := p.buffers[cue]
	p.mu.RUnlock()
	if !ok {
		return
	}
	speaker.Play(buffer.Streamer(0, buffer.Len()))
}

// Close 停止播放
func (p *Player) Close() {
	p.enabled = false
}
