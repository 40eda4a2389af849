package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/finreport/pkg/runtime/terminal/export"
	"github.com/de-tools/finreport/pkg/services/config"
)

type ProfilesCmd struct {
	env       *Environment
	newOutput func(currency string) *export.Reporter
}

// NewProfilesCmd lists the credential profiles of the --config file.
func NewProfilesCmd(env *Environment, newOutput func(currency string) *export.Reporter) *cobra.Command {
	pc := &ProfilesCmd{env: env, newOutput: newOutput}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List text generation credential profiles",
		RunE:  pc.run,
	}

	cmd.Flags().StringVarP(&env.ProfilesPath, "config", "c", config.DefaultProfilesPath(), "Path to the profiles file")

	return cmd
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := pc.env.Context(cmd.Context())

	registry, err := config.NewRegistry(pc.env.ProfilesPath)
	if err != nil {
		return fmt.Errorf("failed to create config registry: %w", err)
	}

	profiles, err := registry.GetProfiles(ctx)
	if err != nil {
		return err
	}

	return pc.newOutput("").HandleProfiles(pc.env.ProfilesPath, profiles)
}
