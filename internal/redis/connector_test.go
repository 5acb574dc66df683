package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/navsite/internal/logger"
)

func validOptions() ConnectOptions {
	return ConnectOptions{
		Addr:           "127.0.0.1:1",
		DialTimeout:    50 * time.Millisecond,
		ConnectTimeout: 200 * time.Millisecond,
		RetryInterval:  20 * time.Millisecond,
		MaxWait:        50 * time.Millisecond,
		PingTimeout:    50 * time.Millisecond,
		WarnThreshold:  1,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ConnectOptions)
		want   string
	}{
		{"valid", func(*ConnectOptions) {}, ""},
		{"no addr", func(o *ConnectOptions) { o.Addr = "" }, "address"},
		{"no connect timeout", func(o *ConnectOptions) { o.ConnectTimeout = 0 }, "ConnectTimeout"},
		{"no retry interval", func(o *ConnectOptions) { o.RetryInterval = 0 }, "RetryInterval"},
		{"no max wait", func(o *ConnectOptions) { o.MaxWait = -1 }, "MaxWait"},
		{"no ping timeout", func(o *ConnectOptions) { o.PingTimeout = 0 }, "PingTimeout"},
		{"negative warn", func(o *ConnectOptions) { o.WarnThreshold = -1 }, "WarnThreshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if tt.want == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestNewGivesUpAfterTimeout(t *testing.T) {
	start := time.Now()
	client, err := New(context.Background(), validOptions(), logger.Nop())

	if err == nil {
		t.Fatal("New() should fail when redis is unreachable")
	}
	if client != nil {
		t.Error("New() should not return a client on failure")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("New() took %v, should respect ConnectTimeout", elapsed)
	}
}
