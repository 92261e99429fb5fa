package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateShortID_Valid(t *testing.T) {
	cases := []string{"ROAD01", "INFRA02", "ABC1234", "BRIDGE01", "XYZ99"}
	for _, id := range cases {
		p := &Project{ShortID: id}
		assert.NoError(t, p.ValidateShortID(), "should accept %q", id)
	}
}

func TestValidateShortID_Empty(t *testing.T) {
	p := &Project{ShortID: ""}
	err := p.ValidateShortID()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestValidateShortID_Lowercase(t *testing.T) {
	p := &Project{ShortID: "road01"}
	err := p.ValidateShortID()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uppercase")
}

func TestValidateShortID_TooShort(t *testing.T) {
	p := &Project{ShortID: "RD1"}
	require.Error(t, p.ValidateShortID())
}

func TestValidateShortID_NoDigits(t *testing.T) {
	p := &Project{ShortID: "ROADS"}
	require.Error(t, p.ValidateShortID())
}

func TestDisplayID_WithShortID(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000", ShortID: "ROAD01"}
	assert.Equal(t, "ROAD01", p.DisplayID())
}

func TestDisplayID_WithoutShortID(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000", ShortID: ""}
	assert.Equal(t, "550e8400", p.DisplayID())
}

func TestArchive(t *testing.T) {
	p := &Project{ShortID: "ROAD01", Status: ProjectActive}
	require.NoError(t, p.Archive(testNow))
	assert.Equal(t, ProjectArchived, p.Status)
	require.NotNil(t, p.ArchivedAt)
	assert.Equal(t, testNow, *p.ArchivedAt)
	assert.Equal(t, testNow, p.UpdatedAt)
}

func TestArchive_AlreadyArchived(t *testing.T) {
	p := &Project{ShortID: "ROAD01", Status: ProjectArchived}
	err := p.Archive(testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already archived")
}

func TestUnarchive(t *testing.T) {
	archived := testNow.Add(-48 * time.Hour)
	p := &Project{ShortID: "ROAD01", Status: ProjectArchived, ArchivedAt: &archived}
	require.NoError(t, p.Unarchive(testNow))
	assert.Equal(t, ProjectActive, p.Status)
	assert.Nil(t, p.ArchivedAt)
}

func TestUnarchive_NotArchived(t *testing.T) {
	p := &Project{ShortID: "ROAD01", Status: ProjectActive}
	require.Error(t, p.Unarchive(testNow))
}
