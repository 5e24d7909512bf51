package note_test

import (
	"testing"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/note"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage(t *testing.T) {
	require.NoError(t, note.StageCustomerService.Validate())
	require.NoError(t, note.StageAccounting.Validate())
	require.Error(t, note.StageUnknown.Validate())
	require.Error(t, note.Stage(42).Validate())

	assert.Equal(t, "CustomerService", note.StageCustomerService.String())
	assert.Equal(t, "Accounting", note.StageAccounting.String())
	assert.Equal(t, "Unknown", note.Stage(42).String())
}

func TestNewNote(t *testing.T) {
	author := kernel.NewUUID()

	t.Run("valid", func(t *testing.T) {
		n, err := note.NewNote(5, author, note.StageCustomerService, "paperwork verified", "files/scan.pdf")

		require.NoError(t, err)
		assert.Equal(t, int64(0), n.ID())
		assert.Equal(t, int64(5), n.OrderID())
		assert.True(t, n.AuthorID().IsEqual(author))
		assert.Equal(t, note.StageCustomerService, n.Stage())
		assert.Equal(t, "paperwork verified", n.Text())
		assert.Equal(t, "files/scan.pdf", n.AttachmentURL())
		require.NoError(t, n.Validate())
	})

	t.Run("attachment_is_optional", func(t *testing.T) {
		n, err := note.NewNote(5, author, note.StageAccounting, "invoice matches", "")
		require.NoError(t, err)
		assert.Empty(t, n.AttachmentURL())
	})

	t.Run("empty_text", func(t *testing.T) {
		_, err := note.NewNote(5, author, note.StageAccounting, "", "")
		require.ErrorIs(t, err, note.ErrTextIsRequired)
	})

	t.Run("bad_stage", func(t *testing.T) {
		_, err := note.NewNote(5, author, note.StageUnknown, "text", "")
		require.Error(t, err)
	})

	t.Run("bad_order_id", func(t *testing.T) {
		_, err := note.NewNote(0, author, note.StageAccounting, "text", "")
		require.Error(t, err)
	})
}

func TestNote_Revise(t *testing.T) {
	n, err := note.RestoreNote(9, 5, kernel.NewUUID(), note.StageCustomerService, "first pass", "")
	require.NoError(t, err)

	reviser := kernel.NewUUID()
	require.NoError(t, n.Revise(reviser, "second pass", "files/updated.pdf"))

	assert.True(t, n.AuthorID().IsEqual(reviser))
	assert.Equal(t, "second pass", n.Text())
	assert.Equal(t, "files/updated.pdf", n.AttachmentURL())
	assert.Equal(t, note.StageCustomerService, n.Stage())

	require.ErrorIs(t, n.Revise(reviser, "", ""), note.ErrTextIsRequired)
}
