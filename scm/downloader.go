package scm

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"

	"github.com/mainframe-ci/endevor-scm/credentials"
	"github.com/mainframe-ci/endevor-scm/share/logger"
)

// Downloader drives one source retrieval through the Topaz CLI.
type Downloader struct {
	*logger.Logger

	config   *Config
	creds    credentials.Provider
	executor CmdExecutor
}

func NewDownloader(config *Config, creds credentials.Provider, l *logger.Logger) *Downloader {
	return &Downloader{
		Logger:   l.Fork("downloader"),
		config:   config,
		creds:    creds,
		executor: NewCmdExecutor(l),
	}
}

// GetSource retrieves the configured elements into targetDir and writes
// changelogFile (empty document when nothing changed, skipped when the path
// is blank). A failed CLI run aborts the retrieval, nothing is reported as
// partially checked out.
func (d *Downloader) GetSource(ctx context.Context, targetDir, changelogFile string) error {
	if targetDir == "" {
		return errors.New("target folder is required")
	}
	if err := d.config.ParseAndValidate(); err != nil {
		return err
	}

	cred, err := d.creds.Get(d.config.Endevor.CredentialsID)
	if err != nil {
		return errors.Wrapf(err, "cannot resolve credentials %q", d.config.Endevor.CredentialsID)
	}
	if cred == nil || cred.Username == "" || cred.Password == "" {
		return errors.Errorf("credentials %q not found or incomplete", d.config.Endevor.CredentialsID)
	}

	before, err := snapshotDir(targetDir)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, d.config.CLI.Timeout)
	defer cancel()

	execCtx := &CmdExecutorContext{
		Command:    d.cliScript(),
		Args:       d.cliArgs(cred, targetDir),
		WorkingDir: d.config.CLI.Path,
	}
	cmd := d.executor.New(ctx, execCtx)
	d.Infof("retrieving elements: %s %s", execCtx.Command, maskedCmdLine(execCtx.Args))

	if err := d.executor.Start(cmd); err != nil {
		return errors.Wrap(err, "cannot start the Topaz CLI")
	}
	if err := d.executor.Wait(cmd); err != nil {
		return errors.Wrap(err, "source retrieval failed")
	}

	after, err := snapshotDir(targetDir)
	if err != nil {
		return err
	}
	if changelogFile != "" {
		if err := writeChangeLog(changelogFile, before, after); err != nil {
			return errors.Wrap(err, "cannot write change log")
		}
	}

	d.Debugf("retrieval finished, %d file(s) in target folder", len(after))
	return nil
}

func (d *Downloader) cliScript() string {
	script := TopazCLISh
	if runtime.GOOS == "windows" {
		script = TopazCLIBat
	}
	return filepath.Join(d.config.CLI.Path, script)
}

func (d *Downloader) cliArgs(cred *credentials.Credential, targetDir string) []string {
	cfg := d.config
	return []string{
		HostParm, cfg.Host(),
		PortParm, cfg.Port(),
		UserIDParm, cred.Username,
		PasswordParm, cred.Password,
		CodePageParm, cfg.Endevor.CodePage,
		FileExtParm, cfg.Endevor.FileExtension,
		FilterParm, cfg.Endevor.FilterPattern,
		ScmTypeParm, ScmTypeEndevor,
		TargetFolderParm, targetDir,
		DataParm, filepath.Join(targetDir, TopazCLIWorkspace),
	}
}

// maskedCmdLine renders the argument list with the password blanked out.
func maskedCmdLine(args []string) string {
	masked := make([]string, len(args))
	copy(masked, args)
	for i := 0; i < len(masked)-1; i++ {
		if masked[i] == PasswordParm {
			masked[i+1] = "****"
		}
	}
	return strings.Join(masked, " ")
}
