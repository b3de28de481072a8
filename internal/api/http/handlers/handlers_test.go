package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCSV(t *testing.T) {
	cases := []struct {
		name        string
		filename    string
		contentType string
		want        bool
	}{
		{"extension", "week.csv", "application/octet-stream", true},
		{"upper case extension", "WEEK.CSV", "", true},
		{"content type", "export", "text/csv; charset=utf-8", true},
		{"neither", "week.xlsx", "application/vnd.ms-excel", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isCSV(tc.filename, tc.contentType))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b,"))
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "5MB", humanSize(DefaultMaxUploadBytes))
	assert.Equal(t, "1000 bytes", humanSize(1000))
}

func TestHead(t *testing.T) {
	assert.Equal(t, []int{1, 2}, head([]int{1, 2, 3}, 2))
	assert.Equal(t, []int{1}, head([]int{1}, 3))
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Check(t *testing.T) {
	h := NewHealthHandler("svc", "test", map[string]Pinger{
		"up":   pingFunc(func(context.Context) error { return nil }),
		"down": pingFunc(func(context.Context) error { return errors.New("connection refused") }),
	}, nil)

	statuses, ready := h.check(context.Background())
	assert.False(t, ready)
	assert.Equal(t, "ok", statuses["up"])
	assert.Equal(t, "connection refused", statuses["down"])
}
