package payroll

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/storage"
)

// memoryPayrollRepository mirrors the SQL repository: reads join the employee
// directory, writes return the bare row.
type memoryPayrollRepository struct {
	mu        sync.Mutex
	records   map[string]payroll.PayrollRecord
	directory fakeDirectory
	seq       int
	clock     time.Time
}

func newMemoryPayrollRepository(directory fakeDirectory) *memoryPayrollRepository {
	return &memoryPayrollRepository{
		records:   make(map[string]payroll.PayrollRecord),
		directory: directory,
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryPayrollRepository) join(r payroll.PayrollRecord) payroll.PayrollRecord {
	p, ok := m.directory.profiles[r.EmployeeID]
	if !ok {
		return r
	}
	name, email := p.FullName, p.Email
	r.EmployeeName, r.EmployeeEmail = &name, &email
	r.Department, r.Position, r.AvatarURL = p.Department, p.Position, p.AvatarURL
	return r
}

func stripJoined(r payroll.PayrollRecord) payroll.PayrollRecord {
	r.EmployeeName, r.EmployeeEmail, r.Department, r.Position, r.AvatarURL = nil, nil, nil, nil, nil
	return r
}

func (m *memoryPayrollRepository) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *memoryPayrollRepository) CreatePayrollRecord(_ context.Context, r payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.records {
		if existing.EmployeeID == r.EmployeeID && existing.PeriodMonth == r.PeriodMonth && existing.PeriodYear == r.PeriodYear {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
	}

	m.seq++
	r.ID = fmt.Sprintf("payroll-%d", m.seq)
	r.CreatedAt = m.tick()
	r.UpdatedAt = r.CreatedAt
	r = stripJoined(r)
	m.records[r.ID] = r
	return r, nil
}

func (m *memoryPayrollRepository) GetPayrollRecordByID(_ context.Context, id string) (payroll.PayrollRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return m.join(r), nil
}

func (m *memoryPayrollRepository) ListPayrollRecords(_ context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []payroll.PayrollRecord
	for _, r := range m.records {
		if filter.Matches(r) {
			out = append(out, m.join(r))
		}
	}
	return out, nil
}

func (m *memoryPayrollRepository) UpdatePayrollRecord(_ context.Context, r payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.records[r.ID]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	if existing.IsFinalized() {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordFinalized
	}
	if !existing.UpdatedAt.Equal(r.UpdatedAt) {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordModified
	}
	r.UpdatedAt = m.tick()
	r = stripJoined(r)
	m.records[r.ID] = r
	return r, nil
}

func (m *memoryPayrollRepository) DeletePayrollRecord(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.records[id]
	if !ok {
		return payroll.ErrPayrollRecordNotFound
	}
	if existing.IsFinalized() {
		return payroll.ErrPayrollRecordFinalized
	}
	delete(m.records, id)
	return nil
}

// interleavingRepository runs beforeWrite once, after the caller loaded the
// record and before its write lands.
type interleavingRepository struct {
	*memoryPayrollRepository
	beforeWrite func()
}

func (r *interleavingRepository) UpdatePayrollRecord(ctx context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	if fn := r.beforeWrite; fn != nil {
		r.beforeWrite = nil
		fn()
	}
	return r.memoryPayrollRepository.UpdatePayrollRecord(ctx, rec)
}

type fakeDirectory struct {
	profiles map[string]employee.Profile
}

func (d fakeDirectory) Lookup(_ context.Context, id string) (employee.Profile, error) {
	p, ok := d.profiles[id]
	if !ok {
		return employee.Profile{}, employee.ErrEmployeeNotFound
	}
	return p, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events map[string][]sse.Event
}

func (p *recordingPublisher) Publish(userID string, event sse.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.events == nil {
		p.events = make(map[string][]sse.Event)
	}
	p.events[userID] = append(p.events[userID], event)
}

type uploadedFile struct {
	contentType string
	data        []byte
}

type memoryStorage struct {
	files map[string]uploadedFile
}

func (s *memoryStorage) Upload(_ context.Context, file io.Reader, _ int64, path string, contentType string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	if s.files == nil {
		s.files = make(map[string]uploadedFile)
	}
	s.files[path] = uploadedFile{contentType: contentType, data: data}
	return path, nil
}

func (s *memoryStorage) Delete(_ context.Context, path string) error {
	delete(s.files, path)
	return nil
}

func (s *memoryStorage) Open(_ context.Context, path string) (io.ReadCloser, error) {
	f, ok := s.files[path]
	if !ok {
		return nil, storage.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

func (s *memoryStorage) GetURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "https://files.example.com/" + path, nil
}
