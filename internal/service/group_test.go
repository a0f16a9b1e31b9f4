package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa/internal/models"
)

func newGroupFixture(t *testing.T) (*fixture, *GroupService) {
	t.Helper()
	f := newFixture(t)
	return f, NewGroupService(f.users, f.groups)
}

func TestCreateGroup(t *testing.T) {
	f, svc := newGroupFixture(t)
	ctx := context.Background()
	f.addUser(t, "alice")
	f.addUser(t, "bob")
	f.addUser(t, "carol")

	// The creator is filtered out of members, deduped, and appended last.
	group, err := svc.Create(ctx, "dinner club", "alice", []string{"bob", "alice", "carol", "bob"})
	require.NoError(t, err)
	assert.Equal(t, 1, group.ID)
	assert.Equal(t, "alice", group.CreatedBy)
	assert.Equal(t, []string{"bob", "carol", "alice"}, group.Members)

	_, err = svc.Create(ctx, "", "alice", nil)
	assert.True(t, models.IsCode(err, models.CodeValidation))

	_, err = svc.Create(ctx, "ghosts", "alice", []string{"casper"})
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestListGroupsForMember(t *testing.T) {
	f, svc := newGroupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.groups.Replace(ctx, []models.Group{
		{ID: 1, Name: "a", CreatedBy: "alice", Members: []string{"bob", "alice"}},
		{ID: 2, Name: "b", CreatedBy: "bob", Members: []string{"bob"}},
	}))

	mine, err := svc.ListFor(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 1, mine[0].ID)
}

func TestLeaveGroup(t *testing.T) {
	f, svc := newGroupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.groups.Replace(ctx, []models.Group{
		{ID: 1, Name: "club", CreatedBy: "alice", Members: []string{"bob", "alice"}},
	}))

	require.NoError(t, svc.Leave(ctx, 1, "bob"))
	group, err := f.groups.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, group.Members)

	err = svc.Leave(ctx, 1, "bob")
	assert.True(t, models.IsCode(err, models.CodeValidation))

	err = svc.Leave(ctx, 42, "alice")
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestLeaveGroupLastMemberDeletesRow(t *testing.T) {
	f, svc := newGroupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.groups.Replace(ctx, []models.Group{
		{ID: 1, Name: "solo", CreatedBy: "alice", Members: []string{"alice"}},
	}))

	require.NoError(t, svc.Leave(ctx, 1, "alice"))

	groups, err := f.groups.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestDeleteGroupCreatorOnly(t *testing.T) {
	f, svc := newGroupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.groups.Replace(ctx, []models.Group{
		{ID: 1, Name: "club", CreatedBy: "alice", Members: []string{"bob", "alice"}},
	}))

	err := svc.Delete(ctx, 1, "bob")
	assert.True(t, models.IsCode(err, models.CodeForbidden))

	require.NoError(t, svc.Delete(ctx, 1, "alice"))

	err = svc.Delete(ctx, 1, "alice")
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
