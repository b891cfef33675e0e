package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lms/learning/internal/access"
	"lms/learning/internal/model"
)

// Store backs the PrincipalDirectory and CourseLookup contracts with
// postgres. Lookup misses are mapped onto the access-package sentinels
// so callers never see pgx.ErrNoRows.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, databaseURL)
}

func (s *Store) PrincipalByEmail(ctx context.Context, email string) (model.Principal, error) {
	var principal model.Principal
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, role, status, first_name, last_name
		FROM users
		WHERE email = $1
	`, email)
	err := row.Scan(
		&principal.ID,
		&principal.Email,
		&principal.Role,
		&principal.Status,
		&principal.FirstName,
		&principal.LastName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Principal{}, access.ErrPrincipalNotFound
	}
	return principal, err
}

// CredentialsByEmail serves the login path only; the password hash is
// never attached to a request context.
func (s *Store) CredentialsByEmail(ctx context.Context, email string) (model.Principal, string, error) {
	var principal model.Principal
	var passwordHash string
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, role, status, first_name, last_name, password_hash
		FROM users
		WHERE email = $1
	`, email)
	err := row.Scan(
		&principal.ID,
		&principal.Email,
		&principal.Role,
		&principal.Status,
		&principal.FirstName,
		&principal.LastName,
		&passwordHash,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Principal{}, "", access.ErrPrincipalNotFound
	}
	return principal, passwordHash, err
}

func (s *Store) CourseByID(ctx context.Context, id string) (model.Course, error) {
	var course model.Course
	row := s.pool.QueryRow(ctx, `
		SELECT id, instructor_id, status
		FROM courses
		WHERE id = $1
	`, id)
	err := row.Scan(&course.ID, &course.InstructorID, &course.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Course{}, access.ErrCourseNotFound
	}
	if err != nil {
		return model.Course{}, err
	}

	course.Enrollments, err = s.listIDs(ctx, `SELECT employee_id FROM enrollments WHERE course_id = $1`, id)
	if err != nil {
		return model.Course{}, err
	}
	course.Assignments, err = s.listIDs(ctx, `SELECT id FROM assignments WHERE course_id = $1`, id)
	if err != nil {
		return model.Course{}, err
	}
	course.CourseMaterials, err = s.listIDs(ctx, `SELECT id FROM course_materials WHERE course_id = $1`, id)
	if err != nil {
		return model.Course{}, err
	}
	return course, nil
}

func (s *Store) ListCourses(ctx context.Context, limit int) ([]model.Course, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, instructor_id, status
		FROM courses
		ORDER BY id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var course model.Course
		if err := rows.Scan(&course.ID, &course.InstructorID, &course.Status); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func (s *Store) UpdateCourseStatus(ctx context.Context, courseID string, status model.CourseStatus) error {
	_, err := s.pool.Exec(ctx, `UPDATE courses SET status = $1 WHERE id = $2`, status, courseID)
	return err
}

func (s *Store) listIDs(ctx context.Context, query, arg string) ([]string, error) {
	rows, err := s.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
