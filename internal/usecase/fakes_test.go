package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"clinic-portal-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They ignore the *gorm.DB handle and back
// the interfaces with mutex-guarded maps so concurrency behavior can be
// exercised without a database.

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*entity.User
	lookups int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (r *fakeUserRepo) add(user *entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	r.users[user.ID] = &clone
}

func (r *fakeUserRepo) get(id uuid.UUID) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone
	}
	return nil
}

func (r *fakeUserRepo) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	r.lookups++
	r.mu.Unlock()
	return r.get(id), nil
}

func (r *fakeUserRepo) FindByResetToken(ctx context.Context, db *gorm.DB, token string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, db *gorm.DB, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) ConsumeResetToken(ctx context.Context, db *gorm.DB, token, passwordHash string, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token && u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now) {
			u.Password = passwordHash
			u.ClearPendingReset()
			return 1, nil
		}
	}
	return 0, nil
}

type fakeRoleRepo struct{}

func (r *fakeRoleRepo) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Role, error) {
	name := entity.RoleName(id)
	if name == "" {
		return nil, nil
	}
	return &entity.Role{ID: id, RoleName: name}, nil
}

func (r *fakeRoleRepo) FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Role, error) {
	for _, id := range []int{entity.RoleIDAdmin, entity.RoleIDDoctor, entity.RoleIDStaff, entity.RoleIDPatient} {
		if entity.RoleName(id) == name {
			return &entity.Role{ID: id, RoleName: name}, nil
		}
	}
	return nil, nil
}

type fakePatientRepo struct {
	mu       sync.Mutex
	patients map[uuid.UUID]*entity.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: map[uuid.UUID]*entity.Patient{}}
}

func (r *fakePatientRepo) add(p *entity.Patient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	clone := *p
	r.patients[p.ID] = &clone
}

func (r *fakePatientRepo) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	r.add(patient)
	return nil
}

func (r *fakePatientRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.patients {
		if p.UserID == userID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakePatientRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.patients[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, nil
}

func (r *fakePatientRepo) Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *patient
	r.patients[patient.ID] = &clone
	return nil
}

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[uuid.UUID]*entity.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[uuid.UUID]*entity.Invoice{}}
}

func (r *fakeInvoiceRepo) add(inv *entity.Invoice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	clone := *inv
	r.invoices[inv.ID] = &clone
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, db *gorm.DB, invoice *entity.Invoice) error {
	r.add(invoice)
	return nil
}

func (r *fakeInvoiceRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv, ok := r.invoices[id]; ok {
		clone := *inv
		return &clone, nil
	}
	return nil, nil
}

// FindByIDForUpdate has no lock to take in memory; serialization in the
// usecase tests comes from the overridden transact hook.
func (r *fakeInvoiceRepo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Invoice, error) {
	return r.FindByID(ctx, db, id)
}

func (r *fakeInvoiceRepo) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Invoice
	for _, inv := range r.invoices {
		if inv.PatientID == patientID {
			out = append(out, *inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeInvoiceRepo) Update(ctx context.Context, db *gorm.DB, invoice *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *invoice
	r.invoices[invoice.ID] = &clone
	return nil
}

type fakePaymentTxRepo struct {
	mu      sync.Mutex
	nextSeq int64
	txs     []entity.PaymentTransaction
}

func newFakePaymentTxRepo() *fakePaymentTxRepo {
	return &fakePaymentTxRepo{}
}

func (r *fakePaymentTxRepo) Create(ctx context.Context, db *gorm.DB, tx *entity.PaymentTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	r.nextSeq++
	tx.Seq = r.nextSeq
	r.txs = append(r.txs, *tx)
	return nil
}

// FindByInvoiceID mirrors the SQL ordering contract: recorded_at
// descending, seq ascending for ties.
func (r *fakePaymentTxRepo) FindByInvoiceID(ctx context.Context, db *gorm.DB, invoiceID uuid.UUID) ([]entity.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.PaymentTransaction
	for _, tx := range r.txs {
		if tx.InvoiceID == invoiceID {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].RecordedAt.Equal(out[j].RecordedAt) {
			return out[i].RecordedAt.After(out[j].RecordedAt)
		}
		return out[i].Seq < out[j].Seq
	})
	return out, nil
}

type fakeWaitTimeRepo struct {
	mu     sync.Mutex
	record *entity.ClinicWaitTime
}

func (r *fakeWaitTimeRepo) Get(ctx context.Context, db *gorm.DB) (*entity.ClinicWaitTime, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.record == nil {
		return nil, nil
	}
	clone := *r.record
	return &clone, nil
}

func (r *fakeWaitTimeRepo) Upsert(ctx context.Context, db *gorm.DB, record *entity.ClinicWaitTime) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *record
	r.record = &clone
	return nil
}

type fakeAuditRepo struct {
	mu   sync.Mutex
	logs []entity.AuditLog
}

func (r *fakeAuditRepo) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *log)
	return nil
}

// FindRecent mirrors the SQL contract: newest entries first.
func (r *fakeAuditRepo) FindRecent(ctx context.Context, db *gorm.DB, limit int) ([]entity.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit > len(r.logs) {
		limit = len(r.logs)
	}
	out := make([]entity.AuditLog, 0, limit)
	for i := len(r.logs) - 1; i >= len(r.logs)-limit; i-- {
		out = append(out, r.logs[i])
	}
	return out, nil
}

type fakeSessionStore struct {
	mu     sync.Mutex
	tokens map[string]bool
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{tokens: map[string]bool{}}
}

func (s *fakeSessionStore) key(prefix string, userID uuid.UUID, tokenID string) string {
	return prefix + userID.String() + ":" + tokenID
}

func (s *fakeSessionStore) SaveAccessToken(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[s.key("a:", userID, tokenID)] = true
	return nil
}

func (s *fakeSessionStore) SaveRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[s.key("r:", userID, tokenID)] = true
	return nil
}

func (s *fakeSessionStore) AccessTokenExists(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[s.key("a:", userID, tokenID)], nil
}

func (s *fakeSessionStore) RevokeAccessToken(ctx context.Context, userID uuid.UUID, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, s.key("a:", userID, tokenID))
	return nil
}

func (s *fakeSessionStore) RevokeRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, s.key("r:", userID, tokenID))
	return nil
}

func (s *fakeSessionStore) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.tokens {
		if strings.Contains(k, userID.String()) {
			delete(s.tokens, k)
		}
	}
	return nil
}

func (s *fakeSessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

type fakeResetNotifier struct {
	mu   sync.Mutex
	sent map[string]string
}

func newFakeResetNotifier() *fakeResetNotifier {
	return &fakeResetNotifier{sent: map[string]string{}}
}

func (n *fakeResetNotifier) SendResetToken(ctx context.Context, email, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent[email] = token
	return nil
}

func (n *fakeResetNotifier) tokenFor(email string) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	token, ok := n.sent[email]
	return token, ok
}
