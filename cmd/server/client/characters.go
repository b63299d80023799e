package client

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/handlers/builder/v1alpha1"
)

var (
	charPlayerID    string
	charID          string
	charName        string
	charRace        string
	charClass       string
	charSessionID   string
	charScores      string
	charMethod      string
	charChoices     map[string]string
	charHitPoints   int
	charMaxHitPoint int
	charLevel       int
	charArmorClass  int
	charBackground  string
	charAppearance  string
	charLineID      string
	charItemName    string
	charQuantity    int
	charEquipped    bool
)

var characterCmd = &cobra.Command{
	Use:   "character",
	Short: "Create and manage characters",
}

var equipmentOptionsCmd = &cobra.Command{
	Use:   "equipment-options",
	Short: "List a class's starting equipment choices",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("ListEquipmentOptions",
			&v1alpha1.ListEquipmentOptionsRequest{ClassKey: charClass},
			&v1alpha1.ListEquipmentOptionsResponse{})
	},
}

var createCharacterCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a character",
	Long: `Create a character from an ability session (--session-id) or literal scores
(--scores str,dex,con,int,wis,cha). Equipment choices are group=label pairs,
for example --choice "0=Chain Mail" --choice "3=Explorer's Pack".`,
	RunE: runCreateCharacter,
}

var getCharacterCmd = &cobra.Command{
	Use:   "get",
	Short: "Show a character and its inventory",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("GetCharacter",
			&v1alpha1.CharacterRequest{CharacterID: charID},
			&v1alpha1.GetCharacterResponse{})
	},
}

var listCharactersCmd = &cobra.Command{
	Use:   "list",
	Short: "List a player's characters",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("ListCharacters",
			&v1alpha1.ListCharactersRequest{PlayerID: charPlayerID},
			&v1alpha1.ListCharactersResponse{})
	},
}

var updateCharacterCmd = &cobra.Command{
	Use:   "update",
	Short: "Edit name, scores, hit points, level or sheet details",
	RunE:  runUpdateCharacter,
}

var deleteCharacterCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a character and its inventory",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("DeleteCharacter",
			&v1alpha1.DeleteCharacterRequest{CharacterID: charID, PlayerID: charPlayerID},
			&v1alpha1.DeleteCharacterResponse{})
	},
}

var addItemCmd = &cobra.Command{
	Use:   "add-item",
	Short: "Add a catalog item to the inventory by name",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("AddInventoryItem",
			&v1alpha1.AddInventoryItemRequest{CharacterID: charID, PlayerID: charPlayerID, ItemName: charItemName, Quantity: charQuantity},
			&v1alpha1.AddInventoryItemResponse{})
	},
}

var equipCmd = &cobra.Command{
	Use:   "equip",
	Short: "Equip or unequip (--equipped=false) an inventory line",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("SetEquipped",
			&v1alpha1.SetEquippedRequest{CharacterID: charID, PlayerID: charPlayerID, LineID: charLineID, Equipped: charEquipped},
			&v1alpha1.InventoryLineResponse{})
	},
}

var removeItemCmd = &cobra.Command{
	Use:   "remove-item",
	Short: "Remove an inventory line",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("RemoveInventoryItem",
			&v1alpha1.RemoveInventoryItemRequest{CharacterID: charID, PlayerID: charPlayerID, LineID: charLineID},
			&v1alpha1.RemoveInventoryItemResponse{})
	},
}

var listSpellsCmd = &cobra.Command{
	Use:   "spells",
	Short: "List spells available at the character's level",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("ListSpells",
			&v1alpha1.CharacterRequest{CharacterID: charID},
			&v1alpha1.ListSpellsResponse{})
	},
}

var listFeaturesCmd = &cobra.Command{
	Use:   "features",
	Short: "List class features unlocked at the character's level",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke("ListFeatures",
			&v1alpha1.CharacterRequest{CharacterID: charID},
			&v1alpha1.ListFeaturesResponse{})
	},
}

func init() {
	equipmentOptionsCmd.Flags().StringVar(&charClass, "class", "", "Class key (required)")
	_ = equipmentOptionsCmd.MarkFlagRequired("class") // nolint:errcheck // safe to ignore in init

	createCharacterCmd.Flags().StringVar(&charPlayerID, "player-id", "", "Player ID (required)")
	createCharacterCmd.Flags().StringVar(&charName, "name", "", "Character name (required)")
	createCharacterCmd.Flags().StringVar(&charRace, "race", "", "Race")
	createCharacterCmd.Flags().StringVar(&charClass, "class", "", "Class key (required)")
	createCharacterCmd.Flags().StringVar(&charSessionID, "session-id", "", "Ability session to take scores from")
	createCharacterCmd.Flags().StringVar(&charScores, "scores", "", "Literal scores str,dex,con,int,wis,cha")
	createCharacterCmd.Flags().StringVar(&charMethod, "equipment-method", "class", "class or gold")
	createCharacterCmd.Flags().StringToStringVar(&charChoices, "choice", nil, "Equipment choice as group=label")
	for _, name := range []string{"player-id", "name", "class"} {
		_ = createCharacterCmd.MarkFlagRequired(name) // nolint:errcheck // safe to ignore in init
	}

	inventoryCmds := []*cobra.Command{addItemCmd, equipCmd, removeItemCmd}
	for _, cmd := range append([]*cobra.Command{getCharacterCmd, updateCharacterCmd, deleteCharacterCmd, listSpellsCmd, listFeaturesCmd}, inventoryCmds...) {
		cmd.Flags().StringVar(&charID, "character-id", "", "Character ID (required)")
		_ = cmd.MarkFlagRequired("character-id") // nolint:errcheck // safe to ignore in init
	}
	for _, cmd := range append([]*cobra.Command{listCharactersCmd, updateCharacterCmd, deleteCharacterCmd}, inventoryCmds...) {
		cmd.Flags().StringVar(&charPlayerID, "player-id", "", "Player ID (required)")
		_ = cmd.MarkFlagRequired("player-id") // nolint:errcheck // safe to ignore in init
	}
	updateCharacterCmd.Flags().StringVar(&charName, "name", "", "New name")
	updateCharacterCmd.Flags().StringVar(&charScores, "scores", "", "New scores str,dex,con,int,wis,cha")
	updateCharacterCmd.Flags().IntVar(&charHitPoints, "hp", 0, "Current hit points")
	updateCharacterCmd.Flags().IntVar(&charMaxHitPoint, "max-hp", 0, "Maximum hit points")
	updateCharacterCmd.Flags().IntVar(&charLevel, "level", 0, "Character level (1-20)")
	updateCharacterCmd.Flags().IntVar(&charArmorClass, "ac", 0, "Armor class")
	updateCharacterCmd.Flags().StringVar(&charBackground, "background", "", "Background")
	updateCharacterCmd.Flags().StringVar(&charAppearance, "appearance", "", "Appearance notes")

	addItemCmd.Flags().StringVar(&charItemName, "item", "", "Catalog item name (required)")
	addItemCmd.Flags().IntVar(&charQuantity, "quantity", 1, "Quantity")
	_ = addItemCmd.MarkFlagRequired("item") // nolint:errcheck // safe to ignore in init
	for _, cmd := range []*cobra.Command{equipCmd, removeItemCmd} {
		cmd.Flags().StringVar(&charLineID, "line-id", "", "Inventory line ID (required)")
		_ = cmd.MarkFlagRequired("line-id") // nolint:errcheck // safe to ignore in init
	}
	equipCmd.Flags().BoolVar(&charEquipped, "equipped", true, "Equipped state to set")

	characterCmd.AddCommand(equipmentOptionsCmd, createCharacterCmd, getCharacterCmd, listCharactersCmd,
		updateCharacterCmd, deleteCharacterCmd, addItemCmd, equipCmd, removeItemCmd, listSpellsCmd, listFeaturesCmd)
}

func runCreateCharacter(_ *cobra.Command, _ []string) error {
	req := &v1alpha1.CreateCharacterRequest{
		PlayerID:         charPlayerID,
		Name:             charName,
		Race:             charRace,
		ClassKey:         charClass,
		AbilitySessionID: charSessionID,
		EquipmentMethod:  charMethod,
	}

	if charScores != "" {
		scores, err := parseScores(charScores)
		if err != nil {
			return err
		}
		req.Scores = scores
	}

	if len(charChoices) > 0 {
		req.Choices = make(map[int]string, len(charChoices))
		for group, label := range charChoices {
			idx, err := strconv.Atoi(group)
			if err != nil {
				return fmt.Errorf("choice group %q is not a number", group)
			}
			req.Choices[idx] = label
		}
	}

	return invoke("CreateCharacter", req, &v1alpha1.CreateCharacterResponse{})
}

func runUpdateCharacter(cmd *cobra.Command, _ []string) error {
	req := &v1alpha1.UpdateCharacterRequest{
		CharacterID: charID,
		PlayerID:    charPlayerID,
	}

	if cmd.Flags().Changed("name") {
		req.Name = &charName
	}
	if cmd.Flags().Changed("scores") {
		scores, err := parseScores(charScores)
		if err != nil {
			return err
		}
		req.Scores = scores
	}
	if cmd.Flags().Changed("hp") {
		req.HitPoints = &charHitPoints
	}
	if cmd.Flags().Changed("max-hp") {
		req.MaxHitPoints = &charMaxHitPoint
	}
	if cmd.Flags().Changed("level") {
		req.Level = &charLevel
	}
	if cmd.Flags().Changed("ac") {
		req.ArmorClass = &charArmorClass
	}
	if cmd.Flags().Changed("background") {
		req.Background = &charBackground
	}
	if cmd.Flags().Changed("appearance") {
		req.Appearance = &charAppearance
	}

	return invoke("UpdateCharacter", req, &v1alpha1.CharacterResponse{})
}

// parseScores reads six comma separated values in sheet order
func parseScores(raw string) (*dnd5e.AbilityScores, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != len(dnd5e.AllAbilities) {
		return nil, fmt.Errorf("expected %d scores, got %d", len(dnd5e.AllAbilities), len(parts))
	}

	var scores dnd5e.AbilityScores
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("score %q is not a number", part)
		}
		scores = scores.With(dnd5e.AllAbilities[i], v)
	}

	return &scores, nil
}
