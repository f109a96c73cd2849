// Package dto содержит структуры запросов и ответов HTTP API.
package dto

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"libraryhub/internal/library/domain/entities"
)

var nullLiteral = []byte("null")

// Date календарная дата в формате YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: entities.DateOf(t)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.Format(entities.DateLayout))), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := entities.ParseDate(s)
	if err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format: %w", err)
	}
	d.Time = t
	return nil
}

// Ptr возвращает указатель на время или nil для nil-даты.
func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func datePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := NewDate(*t)
	return &d
}

// NullableDate различает отсутствующее поле, явный null и значение.
type NullableDate struct {
	Set   bool
	Value *Date
}

func (n *NullableDate) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), nullLiteral) {
		n.Value = nil
		return nil
	}
	var d Date
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	n.Value = &d
	return nil
}

func (n NullableDate) optional() entities.OptionalDate {
	return entities.OptionalDate{Set: n.Set, Value: n.Value.Ptr()}
}
