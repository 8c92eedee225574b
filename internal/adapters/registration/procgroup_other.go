//go:build !unix

package registration

import "os/exec"

// killGroupOnCancel keeps the exec default of killing only the direct child
func killGroupOnCancel(*exec.Cmd) {}
