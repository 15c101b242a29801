//go:build darwin

package platform

import "os/exec"

func newAudioPlayer() AudioPlayer {
	path, err := exec.LookPath("afplay")
	if err != nil {
		return unsupportedAudioPlayer{}
	}
	return &commandPlayer{path: path, args: func(fileName string) []string {
		return []string{fileName}
	}}
}
