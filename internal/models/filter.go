package models

// FilterForm структурированный фильтр списка записей.
// CategoryID имеет смысл только вместе с RecordType.
type FilterForm struct {
	RecordType *int64 `json:"record_type,omitempty" form:"record_type"`
	AccountID  *int64 `json:"account_id,omitempty" form:"account_id"`
	CategoryID *int64 `json:"category_id,omitempty" form:"category_id"`
}

// Equal сравнивает по значениям, а не по указателям
func (f FilterForm) Equal(other FilterForm) bool {
	return eqInt(f.RecordType, other.RecordType) &&
		eqInt(f.AccountID, other.AccountID) &&
		eqInt(f.CategoryID, other.CategoryID)
}

// Type возвращает тип записи фильтра, если он задан
func (f FilterForm) Type() (RecordType, bool) {
	if f.RecordType == nil {
		return 0, false
	}
	return RecordType(*f.RecordType), true
}

func (f FilterForm) IsEmpty() bool {
	return f.RecordType == nil && f.AccountID == nil && f.CategoryID == nil
}

func eqInt(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Int64 удобный конструктор для необязательных полей
func Int64(v int64) *int64 {
	return &v
}
