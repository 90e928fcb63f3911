package scm

import (
	"context"
	"os/exec"

	"github.com/mainframe-ci/endevor-scm/share/logger"
)

type CmdExecutorContext struct {
	Command    string
	Args       []string
	WorkingDir string
}

type CmdExecutor interface {
	New(ctx context.Context, execCtx *CmdExecutorContext) *exec.Cmd
	Start(cmd *exec.Cmd) error
	Wait(cmd *exec.Cmd) error
}

type CmdExecutorImpl struct {
	*logger.Logger
}

func NewCmdExecutor(l *logger.Logger) *CmdExecutorImpl {
	return &CmdExecutorImpl{
		Logger: l,
	}
}

func (e *CmdExecutorImpl) New(ctx context.Context, execCtx *CmdExecutorContext) *exec.Cmd {
	cmd := exec.CommandContext(ctx, execCtx.Command, execCtx.Args...)
	cmd.Dir = execCtx.WorkingDir
	return cmd
}

func (e *CmdExecutorImpl) Start(cmd *exec.Cmd) error {
	return cmd.Start()
}

func (e *CmdExecutorImpl) Wait(cmd *exec.Cmd) error {
	return cmd.Wait()
}
