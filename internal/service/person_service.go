package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"user-directory/internal/domain"
	"user-directory/internal/repository"
)

var (
	// ErrPersonNotFound is returned when a directory record id does not exist.
	ErrPersonNotFound = errors.New("person not found")
	// ErrPersonExists is returned when creating a record whose email is
	// already present in the directory.
	ErrPersonExists = errors.New("person already exists")
)

// DefaultPerPage is the listing page size when the request does not set one.
const DefaultPerPage = 12

// ListRequest carries the listing query parameters. NewIDs, when set,
// restricts the listing to exactly those records (used to highlight a fresh
// CSV import) and disables paging.
type ListRequest struct {
	Query   string
	Page    int
	PerPage int
	NewIDs  []int64
}

// Listing is one page of directory records plus pagination state.
type Listing struct {
	People      []domain.Person
	Page        int
	TotalPages  int
	Total       int
	Highlighted map[int64]bool
}

// PersonService coordinates directory record operations.
type PersonService interface {
	List(ctx context.Context, req ListRequest) (*Listing, error)
	Create(ctx context.Context, person *domain.Person) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Person, error)
	Update(ctx context.Context, person *domain.Person) error
	Delete(ctx context.Context, id int64) (*domain.Person, error)
	ImportCSV(ctx context.Context, r io.Reader) ([]int64, error)
}

type personService struct {
	people repository.PersonRepository
}

func NewPersonService(people repository.PersonRepository) PersonService {
	return &personService{people: people}
}

func (s *personService) List(ctx context.Context, req ListRequest) (*Listing, error) {
	if len(req.NewIDs) > 0 {
		people, err := s.people.List(ctx, repository.PersonFilter{IDs: req.NewIDs})
		if err != nil {
			return nil, err
		}
		highlighted := make(map[int64]bool, len(req.NewIDs))
		for _, id := range req.NewIDs {
			highlighted[id] = true
		}
		return &Listing{
			People:      people,
			Page:        1,
			TotalPages:  1,
			Total:       len(people),
			Highlighted: highlighted,
		}, nil
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	filter := repository.PersonFilter{Search: strings.TrimSpace(req.Query)}
	total, err := s.people.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	filter.Limit = perPage
	filter.Offset = (page - 1) * perPage
	people, err := s.people.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &Listing{
		People:      people,
		Page:        page,
		TotalPages:  (total + perPage - 1) / perPage,
		Total:       total,
		Highlighted: map[int64]bool{},
	}, nil
}

func (s *personService) Create(ctx context.Context, person *domain.Person) (int64, error) {
	person.Name = strings.TrimSpace(person.Name)
	person.Email = strings.TrimSpace(person.Email)
	if person.Name == "" {
		return 0, errors.New("name is required")
	}
	if person.Email == "" {
		return 0, errors.New("email is required")
	}

	if _, err := s.people.GetByEmail(ctx, person.Email); err == nil {
		return 0, ErrPersonExists
	} else if !strings.Contains(strings.ToLower(err.Error()), "not found") {
		return 0, err
	}

	return s.people.Create(ctx, person)
}

func (s *personService) Get(ctx context.Context, id int64) (*domain.Person, error) {
	person, err := s.people.Get(ctx, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	return person, nil
}

// Update persists the record. Empty ImagePath/ResumePath keep the stored
// paths, so an edit without a new upload does not drop existing files.
func (s *personService) Update(ctx context.Context, person *domain.Person) error {
	current, err := s.Get(ctx, person.ID)
	if err != nil {
		return err
	}
	if person.ImagePath == "" {
		person.ImagePath = current.ImagePath
	}
	if person.ResumePath == "" {
		person.ResumePath = current.ResumePath
	}
	return s.people.Update(ctx, person)
}

// Delete removes the record and returns it so the caller can clean up any
// stored files the row pointed at.
func (s *personService) Delete(ctx context.Context, id int64) (*domain.Person, error) {
	person, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.people.Delete(ctx, id); err != nil {
		return nil, err
	}
	return person, nil
}

var csvColumns = []string{"name", "email", "age", "city", "gender", "skills"}

// ImportCSV inserts one record per data row and returns the new ids in file
// order. The header row must name all six columns. All rows are parsed and
// validated before anything touches the store, and the insert runs in one
// transaction, so a malformed row or duplicate email leaves the directory
// unchanged.
func (s *personService) ImportCSV(ctx context.Context, r io.Reader) ([]int64, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range csvColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("csv missing column %q", col)
		}
	}

	var people []*domain.Person
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row := len(people) + 1
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", row, err)
		}

		name := strings.TrimSpace(record[idx["name"]])
		email := strings.TrimSpace(record[idx["email"]])
		if name == "" {
			return nil, fmt.Errorf("row %d: name is required", row)
		}
		if email == "" {
			return nil, fmt.Errorf("row %d: email is required", row)
		}
		age, err := strconv.Atoi(strings.TrimSpace(record[idx["age"]]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parse age %q: %w", row, record[idx["age"]], err)
		}

		people = append(people, &domain.Person{
			Name:   name,
			Email:  email,
			Age:    age,
			City:   record[idx["city"]],
			Gender: record[idx["gender"]],
			Skills: record[idx["skills"]],
		})
	}
	if len(people) == 0 {
		return nil, nil
	}

	ids, err := s.people.CreateBatch(ctx, people)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already exists") {
			return nil, ErrPersonExists
		}
		return nil, err
	}
	return ids, nil
}
