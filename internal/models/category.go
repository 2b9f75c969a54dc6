package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID         int64      `json:"id" db:"id"`
	UserID     *uuid.UUID `json:"-" db:"user_id"` //nil будет если это системная категория
	Name       string     `json:"name" db:"name"`
	RecordType RecordType `json:"record_type" db:"record_type"`
	Icon       string     `json:"icon" db:"icon"`
	Color      string     `json:"color" db:"color"`
	IsSystem   bool       `json:"is_system" db:"is_system"`
	SortOrder  int        `json:"sort_order" db:"sort_order"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// дефолтные системные категориии
var DefaultCategories = []Category{
	{Name: "Зарплата", RecordType: RecordTypeIncome, Icon: "💵", Color: "#4CAF50", IsSystem: true},
	{Name: "Фриланс", RecordType: RecordTypeIncome, Icon: "💻", Color: "#8BC34A", IsSystem: true},
	{Name: "Подарки", RecordType: RecordTypeIncome, Icon: "🎁", Color: "#03A9F4", IsSystem: true},
	{Name: "Другой доход", RecordType: RecordTypeIncome, Icon: "💰", Color: "#2196F3", IsSystem: true},
	{Name: "Продукты", RecordType: RecordTypeExpense, Icon: "🛒", Color: "#FF5722", IsSystem: true},
	{Name: "Рестораны", RecordType: RecordTypeExpense, Icon: "🍽️", Color: "#FF9800", IsSystem: true},
	{Name: "Транспорт", RecordType: RecordTypeExpense, Icon: "🚗", Color: "#FFC107", IsSystem: true},
	{Name: "Жилье", RecordType: RecordTypeExpense, Icon: "🏠", Color: "#795548", IsSystem: true},
	{Name: "Здоровье", RecordType: RecordTypeExpense, Icon: "🏥", Color: "#E91E63", IsSystem: true},
	{Name: "Развлечения", RecordType: RecordTypeExpense, Icon: "🎬", Color: "#9C27B0", IsSystem: true},
	{Name: "Другие расходы", RecordType: RecordTypeExpense, Icon: "📋", Color: "#9E9E9E", IsSystem: true},
}
