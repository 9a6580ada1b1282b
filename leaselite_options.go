package leaselite

import (
	"log/slog"
	"time"

	"github.com/davidroman0O/leaselite/internal/clock"
)

const (
	DefaultMaxFailures     = 3
	DefaultTimeoutInterval = 60 * time.Second
	DefaultPollInterval    = time.Second
	DefaultRetryInterval   = 60 * time.Second
)

type clientConfig struct {
	maxFailures     int
	timeoutInterval time.Duration
	pollInterval    time.Duration
	retryInterval   time.Duration

	now    clock.NowFunc
	sleep  clock.SleepFunc
	logger Logger
	codec  Codec
}

type ClientOption func(*clientConfig)

func defaultConfig() *clientConfig {
	return &clientConfig{
		maxFailures:     DefaultMaxFailures,
		timeoutInterval: DefaultTimeoutInterval,
		pollInterval:    DefaultPollInterval,
		retryInterval:   DefaultRetryInterval,
		now:             clock.Now,
		sleep:           clock.Sleep,
		logger:          NewDefaultLogger(slog.LevelInfo, TextFormat),
		codec:           MsgpackCodec{},
	}
}

// Attempts before a workflow is aborted. Zero or less keeps the default.
func WithMaxFailures(n int) ClientOption {
	return func(c *clientConfig) {
		if n > 0 {
			c.maxFailures = n
		}
	}
}

// Lease granted on claim and refreshed by every step and nap write.
func WithTimeoutInterval(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		if d > 0 {
			c.timeoutInterval = d
		}
	}
}

// Pause between claim attempts while nothing is eligible.
func WithPollInterval(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// Cooldown before a failed workflow can be claimed again.
func WithRetryInterval(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		if d > 0 {
			c.retryInterval = d
		}
	}
}

func WithClock(now clock.NowFunc) ClientOption {
	return func(c *clientConfig) {
		if now != nil {
			c.now = now
		}
	}
}

func WithSleeper(sleep clock.SleepFunc) ClientOption {
	return func(c *clientConfig) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

func WithLogger(logger Logger) ClientOption {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithCodec(codec Codec) ClientOption {
	return func(c *clientConfig) {
		if codec != nil {
			c.codec = codec
		}
	}
}
