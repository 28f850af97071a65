package conn

import "github.com/pkg/errors"

var (
	ErrStageNameMustBeSet = errors.New("stage name must be set")
	ErrStageMustBeSet     = errors.New("stage must be set")
	ErrDuplicateStage     = errors.New("a stage with this name is already installed")
	ErrStageNotFound      = errors.New("no stage with this name is installed")
)
