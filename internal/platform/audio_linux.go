//go:build linux

package platform

import "os/exec"

func newAudioPlayer() AudioPlayer {
	if path, err := exec.LookPath("paplay"); err == nil {
		return &commandPlayer{path: path, args: func(fileName string) []string {
			return []string{fileName}
		}}
	}
	if path, err := exec.LookPath("aplay"); err == nil {
		return &commandPlayer{path: path, args: func(fileName string) []string {
			return []string{"-q", fileName}
		}}
	}
	return unsupportedAudioPlayer{}
}
