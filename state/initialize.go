package state

import (
	"time"

	"textpager/common"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:  time.Now(),
		Format: common.ReportFormatYaml,
	}
}
