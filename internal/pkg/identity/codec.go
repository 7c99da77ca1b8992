package identity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/structure-inspection/internal/pkg/errors"
	"github.com/structure-inspection/internal/pkg/validator"
)

// Location - дескриптор локации и типа, из которого строится номер.
// Город и локация длиннее своих полей обрезаются, короче - дополняются.
type Location struct {
	StateCode       string `json:"state_code" validate:"required,len=2,alpha"`
	DistrictCode    string `json:"district_code" validate:"required,len=2,number"`
	CityCode        string `json:"city_code" validate:"required,alphanum,max=32"`
	LocationCode    string `json:"location_code" validate:"required,alphanum,max=32"`
	TypeOfStructure string `json:"type_of_structure" validate:"required"`
}

// Components - поля номера в том виде, в каком они стоят в строке
type Components struct {
	StateCode         string `json:"state_code"`
	DistrictCode      string `json:"district_code"`
	CityCode          string `json:"city_code"`
	LocationCode      string `json:"location_code"`
	StructureSequence string `json:"structure_sequence"`
	TypeCode          string `json:"type_code"`
}

// Identity - результат кодирования
type Identity struct {
	Number     string     `json:"structural_identity_number"`
	Components Components `json:"components"`
}

func (c Components) get(f Field) string {
	switch f {
	case FieldStateCode:
		return c.StateCode
	case FieldDistrictCode:
		return c.DistrictCode
	case FieldCityCode:
		return c.CityCode
	case FieldLocationCode:
		return c.LocationCode
	case FieldStructureSequence:
		return c.StructureSequence
	case FieldTypeCode:
		return c.TypeCode
	}
	return ""
}

func (c *Components) set(f Field, v string) {
	switch f {
	case FieldStateCode:
		c.StateCode = v
	case FieldDistrictCode:
		c.DistrictCode = v
	case FieldCityCode:
		c.CityCode = v
	case FieldLocationCode:
		c.LocationCode = v
	case FieldStructureSequence:
		c.StructureSequence = v
	case FieldTypeCode:
		c.TypeCode = v
	}
}

// String склеивает поля по таблице Layout
func (c Components) String() string {
	var b strings.Builder
	b.Grow(Length)
	for _, s := range Layout {
		b.WriteString(fit(c.get(s.Field), s))
	}
	return b.String()
}

// Prefix - префикс локации (первые PrefixLength символов)
func (c Components) Prefix() string {
	return string([]rune(c.String())[:PrefixLength])
}

// Sequence - порядковый номер как число
func (c Components) Sequence() (int, error) {
	n, err := strconv.Atoi(c.StructureSequence)
	if err != nil {
		return 0, fmt.Errorf("parse structure sequence %q: %w", c.StructureSequence, err)
	}
	return n, nil
}

// LocationComponents - поля локации без порядкового номера и с кодом типа
func LocationComponents(loc Location) (Components, error) {
	if err := validator.Validate(&loc); err != nil {
		return Components{}, err
	}

	typeCode, err := TypeCode(loc.TypeOfStructure)
	if err != nil {
		return Components{}, err
	}

	c := Components{
		StateCode:    toUpper(loc.StateCode),
		DistrictCode: strings.TrimSpace(loc.DistrictCode),
		CityCode:     toUpper(loc.CityCode),
		LocationCode: toUpper(loc.LocationCode),
		TypeCode:     typeCode,
	}

	// приводим к ширине полей, чтобы компоненты совпадали со строкой
	for _, s := range Layout {
		if s.Field == FieldStructureSequence {
			continue
		}
		c.set(s.Field, fit(c.get(s.Field), s))
	}

	return c, nil
}

// Prefix - префикс локации для дескриптора, по нему ищется следующий номер
func Prefix(loc Location) (string, error) {
	c, err := LocationComponents(loc)
	if err != nil {
		return "", err
	}
	return c.Prefix(), nil
}

// Encode строит номер из дескриптора и порядкового номера, выданного снаружи
func Encode(loc Location, sequence int) (Identity, error) {
	if sequence < 1 || sequence > MaxSequence {
		return Identity{}, apperrors.ErrInvalidSequence.WithDetails(map[string]interface{}{
			"sequence": sequence,
		})
	}

	c, err := LocationComponents(loc)
	if err != nil {
		return Identity{}, err
	}
	c.StructureSequence = FormatSequence(sequence)

	return Identity{
		Number:     c.String(),
		Components: c,
	}, nil
}

// Decode разбирает номер по тем же смещениям. Проверяется только длина,
// коды по таблицам не сверяются.
func Decode(number string) (Components, error) {
	if err := Validate(number); err != nil {
		return Components{}, err
	}

	r := []rune(number)
	var c Components
	for _, s := range Layout {
		c.set(s.Field, string(r[s.Offset:s.Offset+s.Width]))
	}
	return c, nil
}

// Validate проверяет длину номера: ровно Length символов
func Validate(number string) error {
	if n := len([]rune(number)); n != Length {
		return apperrors.ErrInvalidIdentityNumber.WithDetails(map[string]interface{}{
			"length":          n,
			"expected_length": Length,
		})
	}
	return nil
}

// Normalize - каноническая форма для поиска дубликатов
func Normalize(number string) string {
	return toUpper(number)
}

// FormatSequence дополняет номер нулями до ширины поля
func FormatSequence(n int) string {
	return fit(strconv.Itoa(n), segment(FieldStructureSequence))
}

// SequenceOf извлекает порядковый номер из полного номера
func SequenceOf(number string) (int, error) {
	c, err := Decode(number)
	if err != nil {
		return 0, err
	}
	return c.Sequence()
}

// NextSequence - максимум порядковых номеров среди номеров с тем же префиксом плюс один.
// Номер с чужим префиксом пропускается; повреждённый номер - ошибка.
func NextSequence(prefix string, existing []string) (int, error) {
	maxSeq := 0
	for _, number := range existing {
		if !strings.HasPrefix(number, prefix) {
			continue
		}
		seq, err := SequenceOf(number)
		if err != nil {
			return 0, fmt.Errorf("malformed identity number %q: %w", number, err)
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}

	if maxSeq >= MaxSequence {
		return 0, fmt.Errorf("sequence exhausted for prefix %q", prefix)
	}
	return maxSeq + 1, nil
}

// FallbackSequence - псевдономер из времени, когда скан недоступен.
// Уникальность не гарантируется, её проверяет поиск дубликатов.
func FallbackSequence(now time.Time) int {
	return int(now.UnixMilli()%int64(MaxSequence)) + 1
}
