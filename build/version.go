package build

var CurrentCommit string

// BuildVersion is the local build version, set by build system
const BuildVersion = "0.1.0-dev"

// APIVersion changes whenever the rpc surface does.
const APIVersion uint32 = 0x000100

func UserVersion() string {
	if CurrentCommit == "" {
		return BuildVersion
	}
	return BuildVersion + "+" + CurrentCommit
}
