package scm

// Parameter names accepted by the Topaz CLI invocation.
const (
	CodePageParm     = "-code"
	DataParm         = "-data"
	FileExtParm      = "-ext"
	FilterParm       = "-filter"
	HostParm         = "-host"
	PasswordParm     = "-pass"
	PortParm         = "-port"
	ScmTypeParm      = "-scm"
	UserIDParm       = "-id"
	TargetFolderParm = "-targetFolder"
)

// SCM types the CLI can retrieve from.
const (
	ScmTypeEndevor = "endevor"
	ScmTypePDS     = "pds"
)

const (
	TopazCLIBat       = "TopazCLI.bat"
	TopazCLISh        = "TopazCLI.sh"
	TopazCLIWorkspace = "TopazCliWkspc"
)
