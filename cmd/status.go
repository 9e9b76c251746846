// ABOUTME: Status command for the pickbazar CLI
// ABOUTME: Shows the stored session, user role and where state is kept

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/markalston/pickbazar/internal/client"
	"github.com/markalston/pickbazar/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Long:  `Display the session state, the logged-in user and whether a bearer credential is stored. The credential itself is never printed.`,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			printError(os.Stdout, err)
			os.Exit(2)
		}
		if exitCode := runStatus(c, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// sessionStatus is the printable view of a session
type sessionStatus struct {
	APIURL        string           `json:"api_url"`
	State         string           `json:"state"`
	LoggedIn      bool             `json:"logged_in"`
	HasCredential bool             `json:"has_credential"`
	Admin         bool             `json:"admin"`
	User          *session.Profile `json:"user,omitempty"`
	InMemory      bool             `json:"in_memory,omitempty"`
}

func newSessionStatus(c *client.Client) sessionStatus {
	snap := c.Session().Read()
	return sessionStatus{
		APIURL:        c.BaseURL(),
		State:         c.State().String(),
		LoggedIn:      snap.LoggedIn,
		HasCredential: snap.HasCredential(),
		Admin:         snap.Profile.IsAdmin(),
		User:          snap.Profile,
		InMemory:      c.Session().Degraded(),
	}
}

// runStatus prints the session and returns exit code
func runStatus(c *client.Client, w io.Writer) int {
	st := newSessionStatus(c)
	if IsJSONOutput() {
		fmt.Fprintln(w, formatStatusJSON(st))
	} else {
		fmt.Fprintln(w, formatStatusHuman(st))
	}
	return 0
}

// formatStatusHuman formats the session for human readability
func formatStatusHuman(st sessionStatus) string {
	if !st.LoggedIn {
		return fmt.Sprintf("API:      %s\nSession:  %s\n\nNot logged in. Run 'pickbazar login' first.", st.APIURL, st.State)
	}

	credential := "bearer token stored"
	if !st.HasCredential {
		credential = "none (cookie-only session)"
	}

	user, role := "-", "-"
	if st.User != nil {
		if name := st.User.DisplayName(); name != "" {
			user = name
		}
		if st.User.Role != "" {
			role = st.User.Role
		}
	}

	out := fmt.Sprintf(`API:        %s
Session:    %s
User:       %s
Role:       %s
Credential: %s`, st.APIURL, st.State, user, role, credential)

	if st.InMemory {
		out += "\nStorage:    in memory (config directory not writable)"
	}
	return out
}

// formatStatusJSON formats the session as JSON
func formatStatusJSON(st sessionStatus) string {
	data, _ := json.MarshalIndent(st, "", "  ")
	return string(data)
}
