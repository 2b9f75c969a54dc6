// Package filterquery связывает фильтр списка записей с плоской картой
// строковых параметров, которую можно положить в ссылку.
package filterquery

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/alligatorO15/fin-lists/internal/models"
)

const (
	KeyRecordType = "record_type"
	KeyAccountID  = "account_id"
	KeyCategoryID = "category_id"
)

// Params внешнее представление фильтра. Пустые и нулевые значения сюда не попадают.
type Params map[string]string

func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func (p Params) Equal(other Params) bool {
	if len(p) != len(other) {
		return false
	}
	for k, v := range p {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Query каноничная строка запроса, ключи отсортированы
func (p Params) Query() string {
	values := url.Values{}
	for k, v := range p {
		values.Set(k, v)
	}
	return values.Encode()
}

// ParseQuery разбирает строку запроса, при повторе ключа берется первое значение
func ParseQuery(raw string) Params {
	values, _ := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	return FromValues(values)
}

func FromValues(values url.Values) Params {
	p := make(Params, len(values))
	for k := range values {
		p[k] = values.Get(k)
	}
	return p
}

// Decode никогда не падает: мусор превращается в отсутствующее поле
func Decode(p Params) models.FilterForm {
	form := models.FilterForm{
		RecordType: optInt(p, KeyRecordType),
		AccountID:  optInt(p, KeyAccountID),
	}

	// категория без типа записи не имеет смысла
	if form.RecordType != nil {
		form.CategoryID = optInt(p, KeyCategoryID)
	}

	return form
}

// Encode выкидывает пустые и нулевые поля, остальное переводит в строки
func Encode(form models.FilterForm) Params {
	p := Params{}
	put(p, KeyRecordType, form.RecordType)
	put(p, KeyAccountID, form.AccountID)
	if p[KeyRecordType] != "" {
		put(p, KeyCategoryID, form.CategoryID)
	}
	return p
}

// IsRecognized ключи, которые читает фильтр; остальные проходят насквозь
func IsRecognized(key string) bool {
	return key == KeyRecordType || key == KeyAccountID || key == KeyCategoryID
}

func put(p Params, key string, v *int64) {
	if v == nil || *v == 0 {
		return
	}
	p[key] = strconv.FormatInt(*v, 10)
}

func optInt(p Params, key string) *int64 {
	raw := strings.TrimSpace(p[key])
	if raw == "" {
		return nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// "3.7" -> 3, как при приведении к целому на клиенте
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
			return nil
		}
		v = int64(f)
	}

	if v == 0 {
		return nil
	}
	return &v
}
