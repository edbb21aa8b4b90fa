package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
)

func newOrgsCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orgs",
		Short: "List, create and switch organizations",
	}
	cmd.AddCommand(
		newOrgsListCommand(opts),
		newOrgsCreateCommand(opts),
		newOrgsSwitchCommand(opts),
	)
	return cmd
}

func newOrgsListCommand(opts *Options) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the organizations you belong to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sdk, done, err := connect(cmd, opts)
			if err != nil {
				return err
			}
			defer done()

			list, err := sdk.ListOrganizations(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}

			active := ""
			if org := sdk.Organization(); org != nil {
				active = org.ID
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "\tID\tSLUG\tNAME\tROLE")
			for _, m := range list.Data {
				marker := ""
				if m.Organization.ID == active {
					marker = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", marker, m.Organization.ID, m.Organization.Slug, m.Organization.Name, m.Role)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d\n", len(list.Data), list.TotalCount)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "page size (provider default when 0)")
	cmd.Flags().IntVar(&offset, "offset", 0, "page offset")
	return cmd
}

func newOrgsCreateCommand(opts *Options) *cobra.Command {
	var slug string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an organization you administer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sdk, done, err := connect(cmd, opts)
			if err != nil {
				return err
			}
			defer done()

			org, err := sdk.CreateOrganization(cmd.Context(), args[0], slug)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", org.ID, org.Slug)
			return nil
		},
	}

	cmd.Flags().StringVar(&slug, "slug", "", "URL slug (derived from the name when empty)")
	return cmd
}

func newOrgsSwitchCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "switch <id|slug|none>",
		Short: "Set the active organization, or clear it with none",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sdk, done, err := connect(cmd, opts)
			if err != nil {
				return err
			}
			defer done()

			ctx := cmd.Context()
			if args[0] == "none" {
				if err := sdk.SetActiveOrganization(ctx, ""); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "No active organization")
				return nil
			}

			orgID, err := resolveOrganization(cmd, sdk, args[0])
			if err != nil {
				return err
			}
			if err := sdk.SetActiveOrganization(ctx, orgID); err != nil {
				return err
			}
			org := sdk.Organization()
			fmt.Fprintf(cmd.OutOrStdout(), "Active organization: %s (%s)\n", org.Name, org.Slug)
			return nil
		},
	}
}

// resolveOrganization accepts an organization id or slug.
func resolveOrganization(cmd *cobra.Command, sdk *authsdk.SDKClient, ref string) (string, error) {
	if u := sdk.User(); u != nil && u.Membership(ref) != nil {
		return ref, nil
	}

	list, err := sdk.ListOrganizations(cmd.Context(), 500, 0)
	if err != nil {
		return "", err
	}
	for _, org := range list.Organizations() {
		if org.ID == ref || org.Slug == ref {
			return org.ID, nil
		}
	}
	return "", fmt.Errorf("no organization %q", ref)
}
