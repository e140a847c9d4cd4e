package structures

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
	BatchMode  bool
}
