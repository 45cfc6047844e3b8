package repository

import "gorm.io/gorm"

// Store bundles every repository behind one handle so services can run a
// group of reads and writes inside a single transaction: Transaction hands
// the callback a Store bound to the transaction, and any error rolls the
// whole unit back.
type Store interface {
	Organizations() OrganizationRepository
	Users() UserRepository
	Tests() TestRepository
	Periods() PeriodRepository
	Enrollments() EnrollmentRepository
	Attempts() AttemptRepository
	InapQuestions() InapQuestionRepository
	CaasQuestions() CaasQuestionRepository
	InapAnswers() InapAnswerRepository
	CaasAnswers() CaasAnswerRepository
	InapResults() InapResultRepository
	CaasResults() CaasResultRepository

	Transaction(fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a gorm handle into a Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Organizations() OrganizationRepository { return &organizationRepository{db: s.db} }
func (s *gormStore) Users() UserRepository                 { return &userRepository{db: s.db} }
func (s *gormStore) Tests() TestRepository                 { return &testRepository{db: s.db} }
func (s *gormStore) Periods() PeriodRepository             { return &periodRepository{db: s.db} }
func (s *gormStore) Enrollments() EnrollmentRepository     { return &enrollmentRepository{db: s.db} }
func (s *gormStore) Attempts() AttemptRepository           { return &attemptRepository{db: s.db} }
func (s *gormStore) InapQuestions() InapQuestionRepository { return &inapQuestionRepository{db: s.db} }
func (s *gormStore) CaasQuestions() CaasQuestionRepository { return &caasQuestionRepository{db: s.db} }
func (s *gormStore) InapAnswers() InapAnswerRepository     { return &inapAnswerRepository{db: s.db} }
func (s *gormStore) CaasAnswers() CaasAnswerRepository     { return &caasAnswerRepository{db: s.db} }
func (s *gormStore) InapResults() InapResultRepository     { return &inapResultRepository{db: s.db} }
func (s *gormStore) CaasResults() CaasResultRepository     { return &caasResultRepository{db: s.db} }

func (s *gormStore) Transaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
