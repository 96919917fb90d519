// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package placeholder

import (
	"fmt"
	"sort"
	"strconv"
)

// A Record is one resource item as a JSON object.
type Record map[string]interface{}

// ID returns the record's id, or 0.
func (r Record) ID() int {
	switch v := r["id"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// Store holds the seed data for each resource. It is read only once
// built, so one Store may back any number of concurrent handlers.
type Store struct {
	resources map[string][]Record
}

// Seed sizes, matching the real service's users 1 and 2.
const (
	numTodos    = 40
	numPosts    = 20
	numComments = 100
	perUser     = 20
	perPost     = 5
)

// NewStore returns a Store filled with deterministic seed data.
func NewStore() *Store {
	s := &Store{resources: map[string][]Record{}}
	for i := 1; i <= numTodos; i++ {
		s.resources["todos"] = append(s.resources["todos"], Record{
			"userId":    (i-1)/perUser + 1,
			"id":        i,
			"title":     fmt.Sprintf("todo %d", i),
			"completed": i%3 == 0,
		})
	}
	for i := 1; i <= numPosts; i++ {
		s.resources["posts"] = append(s.resources["posts"], Record{
			"userId": (i-1)/(perUser/2) + 1,
			"id":     i,
			"title":  fmt.Sprintf("post %d", i),
			"body":   fmt.Sprintf("body of post %d", i),
		})
	}
	for i := 1; i <= numComments; i++ {
		s.resources["comments"] = append(s.resources["comments"], Record{
			"postId": (i-1)/perPost + 1,
			"id":     i,
			"name":   fmt.Sprintf("comment %d", i),
			"email":  fmt.Sprintf("user%d@example.com", i),
			"body":   fmt.Sprintf("body of comment %d", i),
		})
	}
	return s
}

// Resources returns the resource names in sorted order.
func (s *Store) Resources() []string {
	names := make([]string, 0, len(s.resources))
	for name := range s.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether resource exists.
func (s *Store) Has(resource string) bool {
	_, ok := s.resources[resource]
	return ok
}

// Count returns the number of records in resource.
func (s *Store) Count(resource string) int {
	return len(s.resources[resource])
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(resource string, id int) (Record, bool) {
	for _, r := range s.resources[resource] {
		if r.ID() == id {
			return r.clone(), true
		}
	}
	return nil, false
}

// A Query narrows a List. Filter keeps records whose field, formatted
// as a string, equals one of the given values. Start and Limit slice
// the filtered list; Limit <= 0 means no limit.
type Query struct {
	Filter map[string][]string
	Start  int
	Limit  int
}

// List returns copies of the records matching q.
func (s *Store) List(resource string, q Query) []Record {
	out := []Record{}
	for _, r := range s.resources[resource] {
		if q.matches(r) {
			out = append(out, r.clone())
		}
	}
	if q.Start > 0 {
		if q.Start >= len(out) {
			return []Record{}
		}
		out = out[q.Start:]
	}
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out
}

func (q Query) matches(r Record) bool {
	for field, want := range q.Filter {
		got := fmt.Sprint(r[field])
		found := false
		for _, w := range want {
			if w == got {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (r Record) clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func parseID(s string) (int, bool) {
	id, err := strconv.Atoi(s)
	return id, err == nil && id > 0
}
