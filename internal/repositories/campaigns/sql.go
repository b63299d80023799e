package campaigns

import (
	"context"
	"database/sql"
	"strings"

	"github.com/KirkDiggler/rpg-builder/internal/database"
	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/errors"
)

const (
	campaignColumns = `id, name, dm_player_id, join_code, created_at`
	memberColumns   = `campaign_id, player_id, character_id, role, joined_at`

	errCampaignNil = "campaign cannot be nil"
	errMemberNil   = "member cannot be nil"
)

// Config holds the configuration for the SQL repository
type Config struct {
	DB *database.DB
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.DB == nil {
		return errors.InvalidArgument("database is required")
	}
	return nil
}

type sqlRepository struct {
	db *database.DB
}

// NewSQLRepository creates a campaign store backed by SQL
func NewSQLRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &sqlRepository{db: cfg.DB}, nil
}

var _ Repository = (*sqlRepository)(nil)

// Create inserts the campaign and its initial members in one transaction
func (r *sqlRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	c := input.Campaign
	if c == nil {
		return nil, errors.InvalidArgument(errCampaignNil)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", c.ID, vb)
	errors.ValidateRequired("name", c.Name, vb)
	errors.ValidateRequired("dm_player_id", c.DMPlayerID, vb)
	errors.ValidateRequired("join_code", c.JoinCode, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO campaigns (`+campaignColumns+`) VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.DMPlayerID, c.JoinCode, database.ToMillis(c.CreatedAt),
		); err != nil {
			return err
		}

		for _, m := range c.Members {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO campaign_members (`+memberColumns+`) VALUES (?, ?, ?, ?, ?)`,
				c.ID, m.PlayerID, m.CharacterID, m.Role, database.ToMillis(m.JoinedAt),
			); err != nil {
				return err
			}
			m.CampaignID = c.ID
		}
		return nil
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, errors.AlreadyExists("campaign or join code already exists")
		}
		return nil, errors.Wrap(err, "failed to create campaign")
	}

	return &CreateOutput{Campaign: c}, nil
}

// Get returns a campaign and its members
func (r *sqlRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument("campaign ID cannot be empty")
	}

	c, err := r.loadCampaign(ctx, `id = ?`, input.ID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Campaign: c}, nil
}

// GetByJoinCode returns the campaign matching a join code, ignoring case
func (r *sqlRepository) GetByJoinCode(ctx context.Context, input GetByJoinCodeInput) (*GetByJoinCodeOutput, error) {
	code := strings.ToUpper(strings.TrimSpace(input.JoinCode))
	if code == "" {
		return nil, errors.InvalidArgument("join code cannot be empty")
	}

	c, err := r.loadCampaign(ctx, `join_code = ?`, code)
	if err != nil {
		return nil, err
	}

	return &GetByJoinCodeOutput{Campaign: c}, nil
}

// AddMember inserts a membership
func (r *sqlRepository) AddMember(ctx context.Context, input AddMemberInput) (*AddMemberOutput, error) {
	m := input.Member
	if m == nil {
		return nil, errors.InvalidArgument(errMemberNil)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("campaign_id", m.CampaignID, vb)
	errors.ValidateRequired("player_id", m.PlayerID, vb)
	errors.ValidateEnum("role", m.Role, []string{dnd5e.RoleDM, dnd5e.RolePlayer}, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO campaign_members (`+memberColumns+`) VALUES (?, ?, ?, ?, ?)`,
		m.CampaignID, m.PlayerID, m.CharacterID, m.Role, database.ToMillis(m.JoinedAt),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, errors.AlreadyExists("player is already a member of this campaign")
		}
		return nil, errors.Wrap(err, "failed to add campaign member")
	}

	return &AddMemberOutput{Member: m}, nil
}

// GetMember returns one membership
func (r *sqlRepository) GetMember(ctx context.Context, input GetMemberInput) (*GetMemberOutput, error) {
	if input.CampaignID == "" || input.PlayerID == "" {
		return nil, errors.InvalidArgument("campaign ID and player ID are required")
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM campaign_members WHERE campaign_id = ? AND player_id = ?`,
		input.CampaignID, input.PlayerID)

	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("player %s is not a member of campaign %s", input.PlayerID, input.CampaignID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get campaign member")
	}

	return &GetMemberOutput{Member: m}, nil
}

// ListByPlayer returns the campaigns a player runs or has joined, newest first
func (r *sqlRepository) ListByPlayer(ctx context.Context, input ListByPlayerInput) (*ListByPlayerOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID cannot be empty")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+campaignColumns+` FROM campaigns
		  WHERE dm_player_id = ?
		     OR id IN (SELECT campaign_id FROM campaign_members WHERE player_id = ?)
		  ORDER BY created_at DESC, id`,
		input.PlayerID, input.PlayerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list campaigns")
	}

	var list []*dnd5e.Campaign
	for rows.Next() {
		var (
			c         dnd5e.Campaign
			createdAt int64
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.DMPlayerID, &c.JoinCode, &createdAt); err != nil {
			_ = rows.Close()
			return nil, errors.Wrap(err, "failed to scan campaign")
		}
		c.CreatedAt = database.FromMillis(createdAt)
		list = append(list, &c)
	}
	err = rows.Err()
	_ = rows.Close()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read campaigns")
	}

	// the cursor must be closed first: sqlite runs on a single connection
	for _, c := range list {
		members, err := r.listMembers(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Members = members
	}

	return &ListByPlayerOutput{Campaigns: list}, nil
}

func (r *sqlRepository) loadCampaign(ctx context.Context, where string, arg any) (*dnd5e.Campaign, error) {
	var (
		c         dnd5e.Campaign
		createdAt int64
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE `+where, arg,
	).Scan(&c.ID, &c.Name, &c.DMPlayerID, &c.JoinCode, &createdAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("campaign not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get campaign")
	}
	c.CreatedAt = database.FromMillis(createdAt)

	members, err := r.listMembers(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Members = members

	return &c, nil
}

func (r *sqlRepository) listMembers(ctx context.Context, campaignID string) ([]*dnd5e.CampaignMember, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+memberColumns+` FROM campaign_members WHERE campaign_id = ? ORDER BY joined_at, player_id`,
		campaignID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list campaign members")
	}
	defer func() { _ = rows.Close() }()

	var members []*dnd5e.CampaignMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan campaign member")
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read campaign members")
	}

	return members, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*dnd5e.CampaignMember, error) {
	var (
		m        dnd5e.CampaignMember
		joinedAt int64
	)
	if err := row.Scan(&m.CampaignID, &m.PlayerID, &m.CharacterID, &m.Role, &joinedAt); err != nil {
		return nil, err
	}
	m.JoinedAt = database.FromMillis(joinedAt)
	return &m, nil
}
