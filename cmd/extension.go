package cmd

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

const (
	EnvDB       = "ACCOUNTS_DB"
	EnvLinkMin  = "ACCOUNTS_LINK_MIN"
	EnvLinkMax  = "ACCOUNTS_LINK_MAX"
	EnvLinkStep = "ACCOUNTS_LINK_STEP"
)

// RunExtension attempts to find and execute an external acc-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "acc-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Global flags are passed as environment variables.
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvDB+"="+*dbFile)
	cmd.Env = append(cmd.Env, EnvLinkMin+"="+strconv.Itoa(*linkMin))
	cmd.Env = append(cmd.Env, EnvLinkMax+"="+strconv.Itoa(*linkMax))
	cmd.Env = append(cmd.Env, EnvLinkStep+"="+strconv.Itoa(*linkStep))

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
