package service

import (
	"sort"
	"sync"

	"github.com/mvaldebenito/vocanta/internal/model"
	"github.com/mvaldebenito/vocanta/internal/repository"
	"gorm.io/gorm"
)

// fakeStore is an in-memory repository.Store for service tests. A single
// mutex plays the role of the attempt row lock: Transaction holds it for the
// whole callback, so transactional units serialize exactly like they do
// against postgres. Rollback is not simulated; tests only exercise paths
// where a failed transaction wrote nothing.
type fakeData struct {
	organizations map[uint]model.Organization
	users         map[uint]model.User
	tests         map[uint]model.Test
	periods       map[uint]model.Period
	enrollments   []model.Enrollment
	attempts      map[uint]model.Attempt
	inapQuestions []model.InapQuestion
	caasQuestions []model.CaasQuestion
	inapAnswers   map[uint]map[uint]model.InapAnswer
	caasAnswers   map[uint]map[uint]model.CaasAnswer
	inapResults   map[uint]model.InapResult
	caasResults   map[uint]model.CaasResult
	nextID        uint
}

func (d *fakeData) id() uint {
	d.nextID++
	return d.nextID
}

type fakeStore struct {
	mu   *sync.Mutex
	data *fakeData
	inTx bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		mu: &sync.Mutex{},
		data: &fakeData{
			organizations: make(map[uint]model.Organization),
			users:         make(map[uint]model.User),
			tests:         make(map[uint]model.Test),
			periods:       make(map[uint]model.Period),
			attempts:      make(map[uint]model.Attempt),
			inapAnswers:   make(map[uint]map[uint]model.InapAnswer),
			caasAnswers:   make(map[uint]map[uint]model.CaasAnswer),
			inapResults:   make(map[uint]model.InapResult),
			caasResults:   make(map[uint]model.CaasResult),
		},
	}
}

// lock is a no-op inside a transaction, where the mutex is already held.
func (s *fakeStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *fakeStore) Transaction(fn func(repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&fakeStore{mu: s.mu, data: s.data, inTx: true})
}

func (s *fakeStore) Organizations() repository.OrganizationRepository { return &fakeOrgRepo{s} }
func (s *fakeStore) Users() repository.UserRepository                 { return &fakeUserRepo{s} }
func (s *fakeStore) Tests() repository.TestRepository                 { return &fakeTestRepo{s} }
func (s *fakeStore) Periods() repository.PeriodRepository             { return &fakePeriodRepo{s} }
func (s *fakeStore) Enrollments() repository.EnrollmentRepository     { return &fakeEnrollmentRepo{s} }
func (s *fakeStore) Attempts() repository.AttemptRepository           { return &fakeAttemptRepo{s} }
func (s *fakeStore) InapQuestions() repository.InapQuestionRepository { return &fakeInapQuestionRepo{s} }
func (s *fakeStore) CaasQuestions() repository.CaasQuestionRepository { return &fakeCaasQuestionRepo{s} }
func (s *fakeStore) InapAnswers() repository.InapAnswerRepository     { return &fakeInapAnswerRepo{s} }
func (s *fakeStore) CaasAnswers() repository.CaasAnswerRepository     { return &fakeCaasAnswerRepo{s} }
func (s *fakeStore) InapResults() repository.InapResultRepository     { return &fakeInapResultRepo{s} }
func (s *fakeStore) CaasResults() repository.CaasResultRepository     { return &fakeCaasResultRepo{s} }

type fakeOrgRepo struct{ s *fakeStore }

func (r *fakeOrgRepo) Create(org *model.Organization) error {
	defer r.s.lock()()
	org.ID = r.s.data.id()
	r.s.data.organizations[org.ID] = *org
	return nil
}

func (r *fakeOrgRepo) FindByID(id uint) (*model.Organization, error) {
	defer r.s.lock()()
	org, ok := r.s.data.organizations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &org, nil
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(user *model.User) error {
	defer r.s.lock()()
	user.ID = r.s.data.id()
	r.s.data.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	defer r.s.lock()()
	user, ok := r.s.data.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) FindByRut(rut string) (*model.User, error) {
	defer r.s.lock()()
	for _, u := range r.s.data.users {
		if u.Rut == rut {
			user := u
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeTestRepo struct{ s *fakeStore }

func (r *fakeTestRepo) Create(test *model.Test) error {
	defer r.s.lock()()
	test.ID = r.s.data.id()
	r.s.data.tests[test.ID] = *test
	return nil
}

func (r *fakeTestRepo) FindByID(id uint) (*model.Test, error) {
	defer r.s.lock()()
	test, ok := r.s.data.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &test, nil
}

func (r *fakeTestRepo) FindAll() ([]model.Test, error) {
	defer r.s.lock()()
	tests := make([]model.Test, 0, len(r.s.data.tests))
	for _, t := range r.s.data.tests {
		tests = append(tests, t)
	}
	sort.Slice(tests, func(i, j int) bool { return tests[i].ID < tests[j].ID })
	return tests, nil
}

type fakePeriodRepo struct{ s *fakeStore }

func (r *fakePeriodRepo) Create(period *model.Period) error {
	defer r.s.lock()()
	period.ID = r.s.data.id()
	r.s.data.periods[period.ID] = *period
	return nil
}

func (r *fakePeriodRepo) FindByID(id uint) (*model.Period, error) {
	defer r.s.lock()()
	period, ok := r.s.data.periods[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &period, nil
}

func (r *fakePeriodRepo) FindByIDWithTest(id uint) (*model.Period, error) {
	defer r.s.lock()()
	period, ok := r.s.data.periods[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	period.Test = r.s.data.tests[period.TestID]
	return &period, nil
}

func (r *fakePeriodRepo) FindAllByOrganization(organizationID uint) ([]model.Period, error) {
	defer r.s.lock()()
	var periods []model.Period
	for _, p := range r.s.data.periods {
		if p.OrganizationID == organizationID {
			periods = append(periods, p)
		}
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].ID < periods[j].ID })
	return periods, nil
}

type fakeEnrollmentRepo struct{ s *fakeStore }

func (r *fakeEnrollmentRepo) FirstOrCreate(periodID, userID uint) (*model.Enrollment, error) {
	defer r.s.lock()()
	for _, e := range r.s.data.enrollments {
		if e.PeriodID == periodID && e.UserID == userID {
			found := e
			return &found, nil
		}
	}
	e := model.Enrollment{ID: r.s.data.id(), PeriodID: periodID, UserID: userID}
	e.User = r.s.data.users[userID]
	r.s.data.enrollments = append(r.s.data.enrollments, e)
	return &e, nil
}

func (r *fakeEnrollmentRepo) CountByPeriod(periodID uint) (int64, error) {
	defer r.s.lock()()
	var count int64
	for _, e := range r.s.data.enrollments {
		if e.PeriodID == periodID {
			count++
		}
	}
	return count, nil
}

func (r *fakeEnrollmentRepo) ListByPeriod(periodID uint) ([]model.Enrollment, error) {
	defer r.s.lock()()
	var enrollments []model.Enrollment
	for _, e := range r.s.data.enrollments {
		if e.PeriodID == periodID {
			e.User = r.s.data.users[e.UserID]
			enrollments = append(enrollments, e)
		}
	}
	return enrollments, nil
}

type fakeAttemptRepo struct{ s *fakeStore }

func (r *fakeAttemptRepo) Create(attempt *model.Attempt) error {
	defer r.s.lock()()
	attempt.ID = r.s.data.id()
	r.s.data.attempts[attempt.ID] = *attempt
	return nil
}

func (r *fakeAttemptRepo) FirstOrCreate(periodID, userID uint) (*model.Attempt, error) {
	defer r.s.lock()()
	for _, a := range r.s.data.attempts {
		if a.PeriodID == periodID && a.UserID == userID {
			found := a
			return &found, nil
		}
	}
	a := model.Attempt{
		ID:       r.s.data.id(),
		PeriodID: periodID,
		UserID:   userID,
		Status:   model.AttemptStatusInProgress,
	}
	r.s.data.attempts[a.ID] = a
	return &a, nil
}

func (r *fakeAttemptRepo) FindByID(id uint) (*model.Attempt, error) {
	defer r.s.lock()()
	a, ok := r.s.data.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

// FindByIDForUpdate is FindByID here; the transaction mutex already
// serializes writers the way the row lock does.
func (r *fakeAttemptRepo) FindByIDForUpdate(id uint) (*model.Attempt, error) {
	return r.FindByID(id)
}

func (r *fakeAttemptRepo) Update(attempt *model.Attempt) error {
	defer r.s.lock()()
	if _, ok := r.s.data.attempts[attempt.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.data.attempts[attempt.ID] = *attempt
	return nil
}

func (r *fakeAttemptRepo) IncrementAnsweredCount(id uint, delta int) error {
	defer r.s.lock()()
	a, ok := r.s.data.attempts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.AnsweredCount += delta
	r.s.data.attempts[id] = a
	return nil
}

func (r *fakeAttemptRepo) CountByPeriodAndStatus(periodID uint, status string) (int64, error) {
	defer r.s.lock()()
	var count int64
	for _, a := range r.s.data.attempts {
		if a.PeriodID == periodID && a.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeInapQuestionRepo struct{ s *fakeStore }

func (r *fakeInapQuestionRepo) CreateBatch(questions []model.InapQuestion) error {
	defer r.s.lock()()
	for i := range questions {
		questions[i].ID = r.s.data.id()
		r.s.data.inapQuestions = append(r.s.data.inapQuestions, questions[i])
	}
	return nil
}

func (r *fakeInapQuestionRepo) FindByTestID(testID uint) ([]model.InapQuestion, error) {
	defer r.s.lock()()
	var questions []model.InapQuestion
	for _, q := range r.s.data.inapQuestions {
		if q.TestID == testID {
			questions = append(questions, q)
		}
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].OrderIndex < questions[j].OrderIndex })
	return questions, nil
}

func (r *fakeInapQuestionRepo) CountByTestID(testID uint) (int64, error) {
	qs, _ := r.FindByTestID(testID)
	return int64(len(qs)), nil
}

type fakeCaasQuestionRepo struct{ s *fakeStore }

func (r *fakeCaasQuestionRepo) CreateBatch(questions []model.CaasQuestion) error {
	defer r.s.lock()()
	for i := range questions {
		questions[i].ID = r.s.data.id()
		r.s.data.caasQuestions = append(r.s.data.caasQuestions, questions[i])
	}
	return nil
}

func (r *fakeCaasQuestionRepo) FindByTestID(testID uint) ([]model.CaasQuestion, error) {
	defer r.s.lock()()
	var questions []model.CaasQuestion
	for _, q := range r.s.data.caasQuestions {
		if q.TestID == testID {
			questions = append(questions, q)
		}
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].OrderIndex < questions[j].OrderIndex })
	return questions, nil
}

func (r *fakeCaasQuestionRepo) CountByTestID(testID uint) (int64, error) {
	qs, _ := r.FindByTestID(testID)
	return int64(len(qs)), nil
}

type fakeInapAnswerRepo struct{ s *fakeStore }

func (r *fakeInapAnswerRepo) Upsert(attemptID, questionID uint, value bool) (bool, error) {
	defer r.s.lock()()
	byQuestion := r.s.data.inapAnswers[attemptID]
	if byQuestion == nil {
		byQuestion = make(map[uint]model.InapAnswer)
		r.s.data.inapAnswers[attemptID] = byQuestion
	}
	_, existed := byQuestion[questionID]
	byQuestion[questionID] = model.InapAnswer{AttemptID: attemptID, QuestionID: questionID, Value: value}
	return !existed, nil
}

func (r *fakeInapAnswerRepo) ListByAttempt(attemptID uint) ([]model.InapAnswer, error) {
	defer r.s.lock()()
	var answers []model.InapAnswer
	for _, a := range r.s.data.inapAnswers[attemptID] {
		answers = append(answers, a)
	}
	sort.Slice(answers, func(i, j int) bool { return answers[i].QuestionID < answers[j].QuestionID })
	return answers, nil
}

func (r *fakeInapAnswerRepo) CountByAttempt(attemptID uint) (int64, error) {
	defer r.s.lock()()
	return int64(len(r.s.data.inapAnswers[attemptID])), nil
}

type fakeCaasAnswerRepo struct{ s *fakeStore }

func (r *fakeCaasAnswerRepo) Upsert(attemptID, questionID uint, value int) (bool, error) {
	defer r.s.lock()()
	byQuestion := r.s.data.caasAnswers[attemptID]
	if byQuestion == nil {
		byQuestion = make(map[uint]model.CaasAnswer)
		r.s.data.caasAnswers[attemptID] = byQuestion
	}
	_, existed := byQuestion[questionID]
	byQuestion[questionID] = model.CaasAnswer{AttemptID: attemptID, QuestionID: questionID, Value: value}
	return !existed, nil
}

func (r *fakeCaasAnswerRepo) ListByAttempt(attemptID uint) ([]model.CaasAnswer, error) {
	defer r.s.lock()()
	var answers []model.CaasAnswer
	for _, a := range r.s.data.caasAnswers[attemptID] {
		answers = append(answers, a)
	}
	sort.Slice(answers, func(i, j int) bool { return answers[i].QuestionID < answers[j].QuestionID })
	return answers, nil
}

func (r *fakeCaasAnswerRepo) CountByAttempt(attemptID uint) (int64, error) {
	defer r.s.lock()()
	return int64(len(r.s.data.caasAnswers[attemptID])), nil
}

type fakeInapResultRepo struct{ s *fakeStore }

func (r *fakeInapResultRepo) Upsert(result *model.InapResult) error {
	defer r.s.lock()()
	if existing, ok := r.s.data.inapResults[result.AttemptID]; ok {
		result.ID = existing.ID
	} else {
		result.ID = r.s.data.id()
	}
	r.s.data.inapResults[result.AttemptID] = *result
	return nil
}

func (r *fakeInapResultRepo) FindByAttemptID(attemptID uint) (*model.InapResult, error) {
	defer r.s.lock()()
	result, ok := r.s.data.inapResults[attemptID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &result, nil
}

func (r *fakeInapResultRepo) ListFinishedByPeriod(periodID uint) ([]model.InapResult, error) {
	defer r.s.lock()()
	var results []model.InapResult
	for attemptID, result := range r.s.data.inapResults {
		a, ok := r.s.data.attempts[attemptID]
		if ok && a.PeriodID == periodID && a.Status == model.AttemptStatusFinished {
			results = append(results, result)
		}
	}
	return results, nil
}

type fakeCaasResultRepo struct{ s *fakeStore }

func (r *fakeCaasResultRepo) Upsert(result *model.CaasResult) error {
	defer r.s.lock()()
	if existing, ok := r.s.data.caasResults[result.AttemptID]; ok {
		result.ID = existing.ID
	} else {
		result.ID = r.s.data.id()
	}
	r.s.data.caasResults[result.AttemptID] = *result
	return nil
}

func (r *fakeCaasResultRepo) FindByAttemptID(attemptID uint) (*model.CaasResult, error) {
	defer r.s.lock()()
	result, ok := r.s.data.caasResults[attemptID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &result, nil
}

func (r *fakeCaasResultRepo) ListFinishedByPeriod(periodID uint) ([]model.CaasResult, error) {
	defer r.s.lock()()
	var results []model.CaasResult
	for attemptID, result := range r.s.data.caasResults {
		a, ok := r.s.data.attempts[attemptID]
		if ok && a.PeriodID == periodID && a.Status == model.AttemptStatusFinished {
			results = append(results, result)
		}
	}
	return results, nil
}
