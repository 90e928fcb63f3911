package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mainframe-ci/endevor-scm/credentials"
	"github.com/mainframe-ci/endevor-scm/scm"
	"github.com/mainframe-ci/endevor-scm/share"
	"github.com/mainframe-ci/endevor-scm/share/logger"
)

var scmHelp = `
  Usage: endevor-scm [command] [options]

  Retrieves Endevor elements from a mainframe through the Topaz Workbench
  CLI before a build runs. The configuration is validated field by field,
  a single invalid field blocks the retrieval entirely.

  Commands:

    checkout     validate the configuration and retrieve the elements
                 (default when no command is given)
    codepages    print the supported code page catalog
    creds add <id> <username> <password>
    creds rm <id>
    creds list   manage the credential store

  Options:

    --host-port, Endevor host and port in the form "HOST:PORT".

    --filter-pattern, Filter for the datasets to be retrieved from the
    mainframe. Passed to the CLI unchanged.

    --file-extension, File extension to assign to the incoming datasets.
    Letters and digits only.

    --credentials-id, ID of the credential the retrieval runs as. Resolved
    against the configured credential store.

    --code-page, Code page used to interpret retrieved text. See the
    codepages command for supported values.

    --cli-path, Topaz Workbench CLI installation directory.

    --target-folder, Directory the elements are checked out to.

    --changelog-file, File capturing what the retrieval changed. Contains
    an empty document when nothing changed.

    --verbose, -v, Specify log level. Values: "error", "info", "debug"
    (defaults to "error").

    --log-file, -l, Specifies log file path. (defaults to empty string:
    log printed to stdout)

    --config, -c, Path to a TOML configuration file.

    --help, This help text

    --version, Print version info and exit

  Every option can also come from the environment of a CI plugin step,
  e.g. PLUGIN_HOST_PORT, PLUGIN_FILTER_PATTERN, PLUGIN_CREDENTIALS_ID.

`

var (
	RootCmd = &cobra.Command{
		Use:     "endevor-scm",
		Version: share.BuildVersion,
		Run:     runCheckout,
	}

	checkoutCmd = &cobra.Command{
		Use: "checkout",
		Run: runCheckout,
	}

	codePagesCmd = &cobra.Command{
		Use: "codepages",
		Run: runCodePages,
	}

	credsCmd = &cobra.Command{
		Use: "creds",
	}

	credsAddCmd = &cobra.Command{
		Use:  "add <id> <username> <password>",
		Args: cobra.ExactArgs(3),
		Run:  runCredsAdd,
	}

	credsRmCmd = &cobra.Command{
		Use:  "rm <id>",
		Args: cobra.ExactArgs(1),
		Run:  runCredsRm,
	}

	credsListCmd = &cobra.Command{
		Use: "list",
		Run: runCredsList,
	}

	cfgPath  *string
	viperCfg *viper.Viper
	config   = &scm.Config{}
)

func init() {
	pFlags := RootCmd.PersistentFlags()

	pFlags.String("host-port", "", "")
	pFlags.String("filter-pattern", "", "")
	pFlags.String("file-extension", "", "")
	pFlags.String("credentials-id", "", "")
	pFlags.String("code-page", "", "")
	pFlags.String("cli-path", "", "")
	pFlags.String("target-folder", "", "")
	pFlags.String("changelog-file", "", "")
	pFlags.String("credentials-file", "", "")
	pFlags.StringP("log-file", "l", "", "")
	pFlags.StringP("verbose", "v", "", "")

	cfgPath = pFlags.StringP("config", "c", "", "")

	RootCmd.AddCommand(checkoutCmd, codePagesCmd, credsCmd)
	credsCmd.AddCommand(credsAddCmd, credsRmCmd, credsListCmd)

	RootCmd.SetUsageFunc(func(*cobra.Command) error {
		fmt.Print(scmHelp)
		os.Exit(1)
		return nil
	})

	viperCfg = viper.New()
	viperCfg.SetConfigType("toml")

	viperCfg.SetDefault("logging.log_level", "error")
	viperCfg.SetDefault("cli.timeout", "10m")
	viperCfg.SetDefault("credentials.db_type", "sqlite3")
	viperCfg.SetDefault("credentials.table", "credentials")

	// map config fields to CLI args:
	_ = viperCfg.BindPFlag("endevor.host_port", pFlags.Lookup("host-port"))
	_ = viperCfg.BindPFlag("endevor.filter_pattern", pFlags.Lookup("filter-pattern"))
	_ = viperCfg.BindPFlag("endevor.file_extension", pFlags.Lookup("file-extension"))
	_ = viperCfg.BindPFlag("endevor.credentials_id", pFlags.Lookup("credentials-id"))
	_ = viperCfg.BindPFlag("endevor.code_page", pFlags.Lookup("code-page"))
	_ = viperCfg.BindPFlag("cli.path", pFlags.Lookup("cli-path"))
	_ = viperCfg.BindPFlag("target_folder", pFlags.Lookup("target-folder"))
	_ = viperCfg.BindPFlag("changelog_file", pFlags.Lookup("changelog-file"))
	_ = viperCfg.BindPFlag("credentials.file", pFlags.Lookup("credentials-file"))
	_ = viperCfg.BindPFlag("logging.log_file", pFlags.Lookup("log-file"))
	_ = viperCfg.BindPFlag("logging.log_level", pFlags.Lookup("verbose"))

	// map ENV variables set by a CI plugin step
	_ = viperCfg.BindEnv("endevor.host_port", "PLUGIN_HOST_PORT")
	_ = viperCfg.BindEnv("endevor.filter_pattern", "PLUGIN_FILTER_PATTERN")
	_ = viperCfg.BindEnv("endevor.file_extension", "PLUGIN_FILE_EXTENSION")
	_ = viperCfg.BindEnv("endevor.credentials_id", "PLUGIN_CREDENTIALS_ID")
	_ = viperCfg.BindEnv("endevor.code_page", "PLUGIN_CODE_PAGE")
	_ = viperCfg.BindEnv("cli.path", "PLUGIN_CLI_PATH")
	_ = viperCfg.BindEnv("target_folder", "PLUGIN_TARGET_FOLDER")
	_ = viperCfg.BindEnv("changelog_file", "PLUGIN_CHANGELOG_FILE")
	_ = viperCfg.BindEnv("credentials.file", "PLUGIN_CREDENTIALS_FILE")
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func tryDecodeConfig() error {
	if *cfgPath != "" {
		viperCfg.SetConfigFile(*cfgPath)
	} else {
		viperCfg.AddConfigPath(".")
		viperCfg.SetConfigName("endevor-scm.conf")
	}

	return share.DecodeViperConfig(viperCfg, config)
}

func buildProvider(cfg *scm.Config) (credentials.Provider, error) {
	switch {
	case cfg.Credentials.Database != "":
		db, err := sqlx.Connect(cfg.Credentials.DBType, cfg.Credentials.Database)
		if err != nil {
			return nil, errors.Wrap(err, "cannot open credentials database")
		}
		return credentials.NewDatabaseProvider(db, cfg.Credentials.Table), nil
	case cfg.Credentials.File != "":
		return credentials.NewCachedProvider(credentials.NewFileProvider(cfg.Credentials.File))
	default:
		return nil, errors.New("credentials: either file or database must be configured")
	}
}

func runCheckout(cmd *cobra.Command, args []string) {
	err := tryDecodeConfig()
	if err != nil {
		log.Fatal(err)
	}

	err = config.ParseAndValidate()
	if err != nil {
		log.Fatal(err)
	}

	err = config.Logging.LogOutput.Start()
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		config.Logging.LogOutput.Shutdown()
	}()

	l := logger.NewLogger("endevor-scm", config.Logging.LogOutput, config.Logging.LogLevel)

	provider, err := buildProvider(config)
	if err != nil {
		log.Fatal(err)
	}

	downloader := scm.NewDownloader(config, provider, l)
	if err = downloader.GetSource(context.Background(), config.TargetFolder, config.ChangelogFile); err != nil {
		l.Errorf("%v", err)
		log.Fatal(err)
	}
}

func runCodePages(cmd *cobra.Command, args []string) {
	pages, err := scm.CodePages()
	if err != nil {
		log.Fatal(err)
	}
	for _, page := range pages {
		fmt.Printf("%-6s %s\n", page.Number, page.Description)
	}
}

func credsProvider() credentials.Provider {
	if err := tryDecodeConfig(); err != nil {
		log.Fatal(err)
	}
	provider, err := buildProvider(config)
	if err != nil {
		log.Fatal(err)
	}
	return provider
}

func runCredsAdd(cmd *cobra.Command, args []string) {
	provider := credsProvider()
	added, err := provider.Add(&credentials.Credential{ID: args[0], Username: args[1], Password: args[2]})
	if err != nil {
		log.Fatal(err)
	}
	if !added {
		log.Fatalf("credential %q already exists", args[0])
	}
}

func runCredsRm(cmd *cobra.Command, args []string) {
	provider := credsProvider()
	if err := provider.Delete(args[0]); err != nil {
		log.Fatal(err)
	}
}

func runCredsList(cmd *cobra.Command, args []string) {
	provider := credsProvider()
	all, err := provider.GetAll()
	if err != nil {
		log.Fatal(err)
	}
	for _, c := range all {
		fmt.Printf("%s (%s)\n", c.ID, c.Username)
	}
}
