package client

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-builder/internal/handlers/builder/v1alpha1"
)

var (
	campPlayerID    string
	campID          string
	campName        string
	campJoinCode    string
	campCharacterID string
	dmItemID        string
	dmQuantity      int
	dmQuery         string
	dmLimit         int
	dmHitPoints     int
)

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Create and join campaigns",
}

var createCampaignCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a campaign with you as DM",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("CreateCampaign",
			&v1alpha1.CreateCampaignRequest{PlayerID: campPlayerID, Name: campName},
			&v1alpha1.CampaignResponse{})
	},
}

var joinCampaignCmd = &cobra.Command{
	Use:   "join",
	Short: "Join a campaign by code",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("JoinCampaign",
			&v1alpha1.JoinCampaignRequest{JoinCode: campJoinCode, PlayerID: campPlayerID, CharacterID: campCharacterID},
			&v1alpha1.JoinCampaignResponse{})
	},
}

var getCampaignCmd = &cobra.Command{
	Use:   "get",
	Short: "Show a campaign and its characters",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("GetCampaign",
			&v1alpha1.GetCampaignRequest{CampaignID: campID, PlayerID: campPlayerID},
			&v1alpha1.GetCampaignResponse{})
	},
}

var listCampaignsCmd = &cobra.Command{
	Use:   "list",
	Short: "List the campaigns you run or play in",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("ListCampaigns",
			&v1alpha1.ListCampaignsRequest{PlayerID: campPlayerID},
			&v1alpha1.ListCampaignsResponse{})
	},
}

var dmCmd = &cobra.Command{
	Use:   "dm",
	Short: "DM console",
	Long:  `DM console commands. --player-id must be the campaign's DM.`,
}

var dmHitPointsCmd = &cobra.Command{
	Use:   "hp",
	Short: "Set a character's current hit points",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("UpdateHitPoints",
			&v1alpha1.UpdateHitPointsRequest{
				CampaignID:  campID,
				DMPlayerID:  campPlayerID,
				CharacterID: campCharacterID,
				HitPoints:   dmHitPoints,
			},
			&v1alpha1.CharacterResponse{})
	},
}

var dmGiveCmd = &cobra.Command{
	Use:   "give",
	Short: "Give a catalog item to a character",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("GiveItem",
			&v1alpha1.GiveItemRequest{
				CampaignID:  campID,
				DMPlayerID:  campPlayerID,
				CharacterID: campCharacterID,
				ItemID:      dmItemID,
				Quantity:    dmQuantity,
			},
			&v1alpha1.InventoryLineResponse{})
	},
}

var dmSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the item catalog",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("SearchItems",
			&v1alpha1.SearchItemsRequest{CampaignID: campID, DMPlayerID: campPlayerID, Query: dmQuery, Limit: dmLimit},
			&v1alpha1.SearchItemsResponse{})
	},
}

func init() {
	all := []*cobra.Command{createCampaignCmd, joinCampaignCmd, getCampaignCmd, listCampaignsCmd, dmHitPointsCmd, dmGiveCmd, dmSearchCmd}
	for _, cmd := range all {
		cmd.Flags().StringVar(&campPlayerID, "player-id", "", "Player ID (required)")
		_ = cmd.MarkFlagRequired("player-id") // nolint:errcheck // safe to ignore in init
	}
	for _, cmd := range []*cobra.Command{getCampaignCmd, dmHitPointsCmd, dmGiveCmd, dmSearchCmd} {
		cmd.Flags().StringVar(&campID, "campaign-id", "", "Campaign ID (required)")
		_ = cmd.MarkFlagRequired("campaign-id") // nolint:errcheck // safe to ignore in init
	}
	for _, cmd := range []*cobra.Command{joinCampaignCmd, dmHitPointsCmd, dmGiveCmd} {
		cmd.Flags().StringVar(&campCharacterID, "character-id", "", "Character ID")
	}

	createCampaignCmd.Flags().StringVar(&campName, "name", "", "Campaign name (required)")
	_ = createCampaignCmd.MarkFlagRequired("name") // nolint:errcheck // safe to ignore in init
	joinCampaignCmd.Flags().StringVar(&campJoinCode, "code", "", "Join code (required)")
	_ = joinCampaignCmd.MarkFlagRequired("code") // nolint:errcheck // safe to ignore in init

	dmHitPointsCmd.Flags().IntVar(&dmHitPoints, "hp", 0, "Current hit points")
	dmGiveCmd.Flags().StringVar(&dmItemID, "item-id", "", "Catalog item ID (required)")
	_ = dmGiveCmd.MarkFlagRequired("item-id") // nolint:errcheck // safe to ignore in init
	dmGiveCmd.Flags().IntVar(&dmQuantity, "quantity", 1, "Quantity")
	dmSearchCmd.Flags().StringVar(&dmQuery, "query", "", "Name substring")
	dmSearchCmd.Flags().IntVar(&dmLimit, "limit", 0, "Maximum results (default 5)")

	campaignCmd.AddCommand(createCampaignCmd, joinCampaignCmd, getCampaignCmd, listCampaignsCmd)
	dmCmd.AddCommand(dmHitPointsCmd, dmGiveCmd, dmSearchCmd)
}
