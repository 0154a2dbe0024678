package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, Commit, info.GitCommit)
	assert.Equal(t, BuildTime, info.BuildTime)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "1.2.3",
		GitCommit: "abcdefg",
		BuildTime: "2026-10-18T15:04:05Z",
		GoVersion: "go1.24.2",
		Platform:  "linux/amd64",
	}

	got := info.String()
	assert.True(t, strings.HasPrefix(got, "collect-code version 1.2.3"))
	assert.Contains(t, got, "(commit: abcdefg)")
	assert.Contains(t, got, "on linux/amd64")
}
