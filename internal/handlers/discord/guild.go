package discord

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"sync"

	"github.com/KirkDiggler/tiertest/internal/services/rolesync"
	"github.com/bwmarrin/discordgo"
)

// sessionGuild adapts a discordgo session to rolesync.Guild for one guild.
// Lookups go to the state cache first and fall back to REST. The role list is
// fetched once per sessionGuild, i.e. once per sync pass.
type sessionGuild struct {
	session *discordgo.Session
	guildID string

	rolesOnce sync.Once
	roles     []*discordgo.Role
	rolesErr  error
}

func newSessionGuild(s *discordgo.Session, guildID string) *sessionGuild {
	return &sessionGuild{
		session: s,
		guildID: guildID,
	}
}

// ResolveMember looks up a guild member by user ID
func (g *sessionGuild) ResolveMember(ctx context.Context, userID string) (*rolesync.Member, error) {
	if g.session.State != nil {
		if m, err := g.session.State.Member(g.guildID, userID); err == nil {
			return toMember(userID, m), nil
		}
	}

	m, err := g.session.GuildMember(g.guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err, discordgo.ErrCodeUnknownMember, discordgo.ErrCodeUnknownUser) {
			return nil, rolesync.ErrMemberNotFound
		}
		return nil, err
	}
	return toMember(userID, m), nil
}

// ResolveRole finds a role by exact name; the first match wins
func (g *sessionGuild) ResolveRole(ctx context.Context, name string) (*rolesync.Role, error) {
	g.rolesOnce.Do(func() {
		g.roles, g.rolesErr = g.loadRoles(ctx)
	})
	if g.rolesErr != nil {
		return nil, g.rolesErr
	}

	for _, r := range g.roles {
		if r.Name == name {
			return &rolesync.Role{ID: r.ID, Name: r.Name}, nil
		}
	}
	return nil, rolesync.ErrRoleNotFound
}

// MemberHasRole reports whether the member already holds the role
func (g *sessionGuild) MemberHasRole(member *rolesync.Member, role *rolesync.Role) bool {
	return role != nil && member.HasRole(role.ID)
}

// GrantRole adds the role to the member
func (g *sessionGuild) GrantRole(ctx context.Context, member *rolesync.Member, role *rolesync.Role) error {
	err := g.session.GuildMemberRoleAdd(g.guildID, member.ID, role.ID, discordgo.WithContext(ctx))
	if err != nil && isNotFound(err, discordgo.ErrCodeUnknownMember) {
		return rolesync.ErrMemberNotFound
	}
	return err
}

func (g *sessionGuild) loadRoles(ctx context.Context) ([]*discordgo.Role, error) {
	if g.session.State != nil {
		if guild, err := g.session.State.Guild(g.guildID); err == nil {
			g.session.State.RLock()
			roles := slices.Clone(guild.Roles)
			g.session.State.RUnlock()
			if len(roles) > 0 {
				return roles, nil
			}
		}
	}
	return g.session.GuildRoles(g.guildID, discordgo.WithContext(ctx))
}

func toMember(userID string, m *discordgo.Member) *rolesync.Member {
	return &rolesync.Member{
		ID:      userID,
		RoleIDs: m.Roles,
	}
}

// isNotFound reports a REST 404 or one of the given Discord error codes
func isNotFound(err error, codes ...int) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil {
		for _, code := range codes {
			if restErr.Message.Code == code {
				return true
			}
		}
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}
