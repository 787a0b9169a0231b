package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guesthouse-backend/models"
)

func validContactInput() CreateContactInput {
	return CreateContactInput{
		Name:      "Mihai Ionescu",
		Email:     "mihai@example.com",
		Phone:     "+40 721 000 111",
		Message:   "Aveți locuri disponibile de Paște?",
		IPAddress: "203.0.113.7",
		UserAgent: "test-agent",
	}
}

func TestCreateContactDefaults(t *testing.T) {
	svc := newTestContactService(t)

	ct, err := svc.Create(validContactInput())
	require.NoError(t, err)

	assert.Equal(t, "Întrebare generală", ct.Subject)
	assert.Equal(t, PriorityMedium.String(), ct.Priority)
	assert.Equal(t, ContactNew.String(), ct.Status)
	assert.Equal(t, "website", ct.Source)
	assert.False(t, ct.Replied)
	assert.Nil(t, ct.RepliedAt)

	var logs int64
	require.NoError(t, svc.DB.Model(&models.NotificationLog{}).Count(&logs).Error)
	assert.EqualValues(t, 2, logs)
}

func TestCreateContactKeepsExplicitFields(t *testing.T) {
	svc := newTestContactService(t)

	in := validContactInput()
	in.Subject = "Rezervare grup"
	in.Priority = PriorityUrgent.String()

	ct, err := svc.Create(in)
	require.NoError(t, err)
	assert.Equal(t, "Rezervare grup", ct.Subject)
	assert.Equal(t, PriorityUrgent.String(), ct.Priority)
}

func TestGetContactMarksRead(t *testing.T) {
	svc := newTestContactService(t)

	ct, err := svc.Create(validContactInput())
	require.NoError(t, err)

	got, err := svc.Get(ct.ID)
	require.NoError(t, err)
	assert.Equal(t, ContactRead.String(), got.Status)

	// a second read leaves it as-is
	got, err = svc.Get(ct.ID)
	require.NoError(t, err)
	assert.Equal(t, ContactRead.String(), got.Status)
}

func TestGetContactDoesNotDowngradeStatus(t *testing.T) {
	svc := newTestContactService(t)

	ct, err := svc.Create(validContactInput())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ct.ID, ContactArchived, nil)
	require.NoError(t, err)

	got, err := svc.Get(ct.ID)
	require.NoError(t, err)
	assert.Equal(t, ContactArchived.String(), got.Status)
}

func TestUpdateContactStatusRepliedStamps(t *testing.T) {
	svc := newTestContactService(t)

	ct, err := svc.Create(validContactInput())
	require.NoError(t, err)

	notes := "Răspuns trimis pe email"
	got, err := svc.UpdateStatus(ct.ID, ContactReplied, &notes)
	require.NoError(t, err)

	assert.Equal(t, ContactReplied.String(), got.Status)
	assert.True(t, got.Replied)
	require.NotNil(t, got.RepliedAt)
	assert.Equal(t, notes, got.Notes)
}

func TestUpdateContactPriority(t *testing.T) {
	svc := newTestContactService(t)

	ct, err := svc.Create(validContactInput())
	require.NoError(t, err)

	got, err := svc.UpdatePriority(ct.ID, PriorityUrgent)
	require.NoError(t, err)
	assert.Equal(t, PriorityUrgent.String(), got.Priority)

	_, err = svc.UpdatePriority(9999, PriorityLow)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListContactsPriorityOrder(t *testing.T) {
	svc := newTestContactService(t)

	low := validContactInput()
	low.Priority = PriorityLow.String()
	urgent := validContactInput()
	urgent.Priority = PriorityUrgent.String()
	high := validContactInput()
	high.Priority = PriorityHigh.String()

	for _, in := range []CreateContactInput{low, urgent, high} {
		_, err := svc.Create(in)
		require.NoError(t, err)
	}

	list, _, err := svc.List(ContactFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, PriorityUrgent.String(), list[0].Priority)
	assert.Equal(t, PriorityHigh.String(), list[1].Priority)
	assert.Equal(t, PriorityLow.String(), list[2].Priority)
}

func TestDeleteContact(t *testing.T) {
	svc := newTestContactService(t)

	ct, err := svc.Create(validContactInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ct.ID))
	assert.ErrorIs(t, svc.Delete(ct.ID), ErrNotFound)

	_, err = svc.Get(ct.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContactStats(t *testing.T) {
	svc := newTestContactService(t)

	urgent := validContactInput()
	urgent.Priority = PriorityUrgent.String()
	_, err := svc.Create(urgent)
	require.NoError(t, err)

	ct, err := svc.Create(validContactInput())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ct.ID, ContactReplied, nil)
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.Total)
	assert.EqualValues(t, 1, stats.ByStatus[ContactNew.String()])
	assert.EqualValues(t, 1, stats.ByStatus[ContactReplied.String()])
	assert.EqualValues(t, 1, stats.Urgent)
	assert.EqualValues(t, 2, stats.Today)
}
