//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

func newAudioPlayer() AudioPlayer {
	path, err := exec.LookPath("powershell")
	if err != nil {
		return unsupportedAudioPlayer{}
	}
	return &commandPlayer{path: path, args: func(fileName string) []string {
		return []string{
			"-NoProfile",
			"-NonInteractive",
			"-Command",
			fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", quotePowerShell(fileName)),
		}
	}}
}

func quotePowerShell(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}
