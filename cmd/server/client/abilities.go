package client

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-builder/internal/handlers/builder/v1alpha1"
)

var (
	abilityPlayerID  string
	abilityResume    bool
	abilitySessionID string
	abilityMethod    string
	abilityKey       string
	abilityDelta     int
	abilityValue     int
	rollGroupID      string
)

var abilityCmd = &cobra.Command{
	Use:   "ability",
	Short: "Build ability scores",
	Long:  `Start and drive an ability score build session (point buy, standard array or dice).`,
}

var abilityStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a point-buy session (--resume returns the current one)",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("StartAbilitySession",
			&v1alpha1.StartAbilitySessionRequest{PlayerID: abilityPlayerID, Resume: abilityResume},
			&v1alpha1.AbilitySessionResponse{})
	},
}

var abilityGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show a session",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("GetAbilitySession",
			&v1alpha1.AbilitySessionRequest{SessionID: abilitySessionID, PlayerID: abilityPlayerID},
			&v1alpha1.AbilitySessionResponse{})
	},
}

var abilityMethodCmd = &cobra.Command{
	Use:   "method",
	Short: "Switch generation method (point_buy|standard_array|dice)",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("SelectMethod",
			&v1alpha1.SelectMethodRequest{SessionID: abilitySessionID, PlayerID: abilityPlayerID, Method: abilityMethod},
			&v1alpha1.AbilitySessionResponse{})
	},
}

var abilityDeltaCmd = &cobra.Command{
	Use:   "delta",
	Short: "Point-buy step on one ability",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("ApplyDelta",
			&v1alpha1.ScoreDeltaRequest{SessionID: abilitySessionID, PlayerID: abilityPlayerID, Ability: abilityKey, Delta: abilityDelta},
			&v1alpha1.AbilitySessionResponse{})
	},
}

var abilityDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Assign the standard array in sheet order",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("ApplyDefaultDistribution",
			&v1alpha1.AbilitySessionRequest{SessionID: abilitySessionID, PlayerID: abilityPlayerID},
			&v1alpha1.AbilitySessionResponse{})
	},
}

var abilityAdjustCmd = &cobra.Command{
	Use:   "adjust",
	Short: "Free step on one ability (standard array or dice)",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("AdjustScore",
			&v1alpha1.ScoreDeltaRequest{SessionID: abilitySessionID, PlayerID: abilityPlayerID, Ability: abilityKey, Delta: abilityDelta},
			&v1alpha1.AbilitySessionResponse{})
	},
}

var abilityRollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Roll one 4d6 group",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("RollAbilityGroup",
			&v1alpha1.AbilitySessionRequest{SessionID: abilitySessionID, PlayerID: abilityPlayerID},
			&v1alpha1.AbilitySessionResponse{})
	},
}

var abilityAssignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Bind a roll group to an ability (omit --ability to unbind)",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("AssignRoll",
			&v1alpha1.AssignRollRequest{SessionID: abilitySessionID, PlayerID: abilityPlayerID, GroupID: rollGroupID, Ability: abilityKey},
			&v1alpha1.AbilitySessionResponse{})
	},
}

var abilitySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set an unbound ability in dice mode",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("SetScore",
			&v1alpha1.SetScoreRequest{SessionID: abilitySessionID, PlayerID: abilityPlayerID, Ability: abilityKey, Value: abilityValue},
			&v1alpha1.AbilitySessionResponse{})
	},
}

func init() {
	abilityStartCmd.Flags().BoolVar(&abilityResume, "resume", false, "Return the player's live session if there is one")

	sessionCmds := []*cobra.Command{
		abilityGetCmd, abilityMethodCmd, abilityDeltaCmd, abilityDefaultCmd,
		abilityAdjustCmd, abilityRollCmd, abilityAssignCmd, abilitySetCmd,
	}
	for _, cmd := range sessionCmds {
		cmd.Flags().StringVar(&abilitySessionID, "session-id", "", "Ability session ID (required)")
		_ = cmd.MarkFlagRequired("session-id") // nolint:errcheck // safe to ignore in init
	}
	for _, cmd := range append([]*cobra.Command{abilityStartCmd}, sessionCmds...) {
		cmd.Flags().StringVar(&abilityPlayerID, "player-id", "", "Player ID (required)")
		_ = cmd.MarkFlagRequired("player-id") // nolint:errcheck // safe to ignore in init
	}

	abilityMethodCmd.Flags().StringVar(&abilityMethod, "method", "", "point_buy, standard_array or dice")
	for _, cmd := range []*cobra.Command{abilityDeltaCmd, abilityAdjustCmd, abilityAssignCmd, abilitySetCmd} {
		cmd.Flags().StringVar(&abilityKey, "ability", "", "Ability key (str, dex, con, int, wis, cha)")
	}
	abilityDeltaCmd.Flags().IntVar(&abilityDelta, "delta", 1, "+1 or -1")
	abilityAdjustCmd.Flags().IntVar(&abilityDelta, "delta", 1, "+1 or -1")
	abilityAssignCmd.Flags().StringVar(&rollGroupID, "group-id", "", "Roll group ID")
	abilitySetCmd.Flags().IntVar(&abilityValue, "value", 0, "Score value")

	abilityCmd.AddCommand(abilityStartCmd)
	for _, cmd := range sessionCmds {
		abilityCmd.AddCommand(cmd)
	}
}
