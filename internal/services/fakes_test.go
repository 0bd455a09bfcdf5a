package services

import (
	"context"
	"fmt"
	"time"

	"eventdesk/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID    map[string]*domain.Event
	invited map[string][]string // userID -> event IDs
	nextID  int
	err     error // if set, Create returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:    make(map[string]*domain.Event),
		invited: make(map[string][]string),
		nextID:  1,
	}
}

func (f *fakeEventRepo) add(e *domain.Event) *domain.Event {
	if e.ID == "" {
		e.ID = fmt.Sprintf("ev-%d", f.nextID)
		f.nextID++
	}
	f.byID[e.ID] = e
	return e
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.add(e)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) FindDuplicate(ctx context.Context, organizationID, title string, startTime, endTime time.Time) (*domain.Event, error) {
	for _, e := range f.byID {
		if e.OrganizationID == organizationID && e.Title == title &&
			e.StartTime.Equal(startTime) && e.EndTime.Equal(endTime) {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) Update(ctx context.Context, eventID string, fields domain.UpdateEventFields) (*domain.Event, error) {
	e, ok := f.byID[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if fields.Title != nil {
		e.Title = *fields.Title
	}
	if fields.Description != nil {
		e.Description = *fields.Description
	}
	if fields.StartTime != nil {
		e.StartTime = *fields.StartTime
	}
	if fields.EndTime != nil {
		e.EndTime = *fields.EndTime
	}
	if fields.Status != nil {
		e.Status = *fields.Status
	}
	if fields.RequireSignature != nil {
		e.RequireSignature = *fields.RequireSignature
	}
	return e, nil
}

func (f *fakeEventRepo) SetBroadcast(ctx context.Context, eventID string) (*domain.Event, error) {
	e, ok := f.byID[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e.IsBroadcast = true
	return e, nil
}

func (f *fakeEventRepo) ListByOrganizationID(ctx context.Context, organizationID string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		if e.OrganizationID == organizationID && !e.IsBroadcast {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListBroadcast(ctx context.Context) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		if e.IsBroadcast {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListInvitedByUserID(ctx context.Context, userID string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, id := range f.invited[userID] {
		if e, ok := f.byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListAll(ctx context.Context) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, nil
}

// fakeInvitationRepo is an in-memory InvitationRepository for tests.
type fakeInvitationRepo struct {
	byEvent     map[string][]string // eventID -> user IDs
	addCalls    int
	removeCalls int
	addErr      error
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{byEvent: make(map[string][]string)}
}

func (f *fakeInvitationRepo) ListUserIDsByEventID(ctx context.Context, eventID string) ([]string, error) {
	return append([]string(nil), f.byEvent[eventID]...), nil
}

func (f *fakeInvitationRepo) AddMany(ctx context.Context, eventID string, userIDs []string, invitedAt time.Time) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.addCalls++
	existing := make(map[string]struct{}, len(f.byEvent[eventID]))
	for _, id := range f.byEvent[eventID] {
		existing[id] = struct{}{}
	}
	for _, id := range userIDs {
		if _, ok := existing[id]; !ok {
			f.byEvent[eventID] = append(f.byEvent[eventID], id)
		}
	}
	return nil
}

func (f *fakeInvitationRepo) RemoveMany(ctx context.Context, eventID string, userIDs []string) error {
	f.removeCalls++
	drop := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		drop[id] = struct{}{}
	}
	var kept []string
	for _, id := range f.byEvent[eventID] {
		if _, ok := drop[id]; !ok {
			kept = append(kept, id)
		}
	}
	f.byEvent[eventID] = kept
	return nil
}

// fakeHiddenRepo is an in-memory HiddenEventRepository for tests.
type fakeHiddenRepo struct {
	hidden        map[string][]string // userID -> event IDs
	hideManyCalls [][]string
}

func newFakeHiddenRepo() *fakeHiddenRepo {
	return &fakeHiddenRepo{hidden: make(map[string][]string)}
}

func (f *fakeHiddenRepo) Hide(ctx context.Context, userID, eventID string) error {
	for _, id := range f.hidden[userID] {
		if id == eventID {
			return nil
		}
	}
	f.hidden[userID] = append(f.hidden[userID], eventID)
	return nil
}

func (f *fakeHiddenRepo) HideMany(ctx context.Context, userID string, eventIDs []string) error {
	f.hideManyCalls = append(f.hideManyCalls, eventIDs)
	for _, id := range eventIDs {
		_ = f.Hide(ctx, userID, id)
	}
	return nil
}

func (f *fakeHiddenRepo) ListEventIDsByUserID(ctx context.Context, userID string) ([]string, error) {
	return append([]string(nil), f.hidden[userID]...), nil
}

// fakeOrgRepo is an in-memory OrganizationRepository for tests.
type fakeOrgRepo struct {
	byID     map[string]*domain.Organization
	fallback *domain.Organization
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{byID: make(map[string]*domain.Organization)}
}

func (f *fakeOrgRepo) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	if o, ok := f.byID[id]; ok {
		return o, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeOrgRepo) GetFallback(ctx context.Context) (*domain.Organization, error) {
	if f.fallback == nil {
		return nil, domain.ErrNotFound
	}
	return f.fallback, nil
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// fakeNotificationRepo is an in-memory NotificationRepository for tests.
type fakeNotificationRepo struct {
	created []*domain.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	n.ID = fmt.Sprintf("note-%d", len(f.created)+1)
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

// fakeDeleter records the IDs it was asked to delete.
type fakeDeleter struct {
	lastIDs []string
	calls   int
	err     error
}

func (f *fakeDeleter) DeleteEvents(ctx context.Context, eventIDs []string) (domain.DeletionResult, error) {
	f.calls++
	f.lastIDs = append([]string(nil), eventIDs...)
	if f.err != nil {
		return domain.DeletionResult{}, f.err
	}
	return domain.DeletionResult{DeletedCount: len(eventIDs)}, nil
}

// fakeEmailService records sent invitation emails.
type fakeEmailService struct {
	sent []*domain.InvitationEmailData
	err  error
}

func (f *fakeEmailService) SendEventInvitation(ctx context.Context, data *domain.InvitationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// fakeParticipantRepo is an in-memory ParticipantRepository for tests.
type fakeParticipantRepo struct {
	joined     map[string][]string // eventID -> user IDs
	signed     map[string][]string
	attendance int
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{
		joined: make(map[string][]string),
		signed: make(map[string][]string),
	}
}

func (f *fakeParticipantRepo) Add(ctx context.Context, eventID, userID string, joinedAt time.Time) error {
	for _, id := range f.joined[eventID] {
		if id == userID {
			return domain.ErrAlreadyJoined
		}
	}
	f.joined[eventID] = append(f.joined[eventID], userID)
	return nil
}

func (f *fakeParticipantRepo) AddSignature(ctx context.Context, eventID, userID string, signedAt time.Time) error {
	for _, id := range f.signed[eventID] {
		if id == userID {
			return domain.ErrAlreadySigned
		}
	}
	f.signed[eventID] = append(f.signed[eventID], userID)
	return nil
}

func (f *fakeParticipantRepo) LogAttendance(ctx context.Context, eventID, userID string, at time.Time) error {
	f.attendance++
	return nil
}

// fakePublicLinkRepo is an in-memory PublicLinkRepository for tests.
type fakePublicLinkRepo struct {
	byToken map[string]*domain.EventPublicLink
	guests  []*domain.PublicEventGuest
	nextID  int
}

func newFakePublicLinkRepo() *fakePublicLinkRepo {
	return &fakePublicLinkRepo{byToken: make(map[string]*domain.EventPublicLink), nextID: 1}
}

func (f *fakePublicLinkRepo) Create(ctx context.Context, link *domain.EventPublicLink) error {
	link.ID = fmt.Sprintf("link-%d", f.nextID)
	f.nextID++
	f.byToken[link.Token] = link
	return nil
}

func (f *fakePublicLinkRepo) GetByToken(ctx context.Context, token string) (*domain.EventPublicLink, error) {
	if l, ok := f.byToken[token]; ok {
		return l, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePublicLinkRepo) AddGuest(ctx context.Context, guest *domain.PublicEventGuest) error {
	guest.ID = fmt.Sprintf("guest-%d", len(f.guests)+1)
	f.guests = append(f.guests, guest)
	return nil
}

// fakeAccessCodeHasher is a transparent AccessCodeHasher for tests.
type fakeAccessCodeHasher struct{}

func (fakeAccessCodeHasher) Hash(code string) (string, error) {
	return "hashed:" + code, nil
}

func (fakeAccessCodeHasher) Compare(hash, code string) error {
	if hash != "hashed:"+code {
		return fmt.Errorf("mismatch")
	}
	return nil
}
