// Package identity кодирует и разбирает 17-символьный идентификационный номер структуры.
//
// Формат (слева направо): штат(2) + округ(2) + город(4) + локация(2) +
// порядковый номер(5) + тип(2). Смещения выводятся из единой таблицы Layout,
// поэтому изменение ширины поля затрагивает только её.
package identity

// Field - поле идентификационного номера
type Field string

const (
	FieldStateCode         Field = "state_code"
	FieldDistrictCode      Field = "district_code"
	FieldCityCode          Field = "city_code"
	FieldLocationCode      Field = "location_code"
	FieldStructureSequence Field = "structure_sequence"
	FieldTypeCode          Field = "type_code"
)

// Segment - положение поля в номере
type Segment struct {
	Field  Field
	Offset int
	Width  int
	// Pad - символ дополнения для коротких значений
	Pad rune
	// LeftPad - дополнять слева (числовые поля)
	LeftPad bool
}

// Layout - порядок и ширины полей. Offset вычисляется при инициализации.
var Layout = buildLayout([]Segment{
	{Field: FieldStateCode, Width: 2, Pad: 'X'},
	{Field: FieldDistrictCode, Width: 2, Pad: '0', LeftPad: true},
	{Field: FieldCityCode, Width: 4, Pad: 'X'},
	{Field: FieldLocationCode, Width: 2, Pad: 'X'},
	{Field: FieldStructureSequence, Width: 5, Pad: '0', LeftPad: true},
	{Field: FieldTypeCode, Width: 2, Pad: 'X'},
})

var (
	// Length - полная длина номера
	Length = totalWidth(Layout)

	// PrefixLength - длина префикса локации (всё до порядкового номера)
	PrefixLength = segment(FieldStructureSequence).Offset

	// MaxSequence - максимальный порядковый номер, помещающийся в поле
	MaxSequence = maxForWidth(segment(FieldStructureSequence).Width)
)

func buildLayout(segments []Segment) []Segment {
	offset := 0
	out := make([]Segment, len(segments))
	for i, s := range segments {
		s.Offset = offset
		offset += s.Width
		out[i] = s
	}
	return out
}

func totalWidth(segments []Segment) int {
	total := 0
	for _, s := range segments {
		total += s.Width
	}
	return total
}

func maxForWidth(width int) int {
	m := 1
	for i := 0; i < width; i++ {
		m *= 10
	}
	return m - 1
}

// segment возвращает описание поля; поле обязано присутствовать в Layout
func segment(f Field) Segment {
	for _, s := range Layout {
		if s.Field == f {
			return s
		}
	}
	panic("identity: field " + string(f) + " is missing from layout")
}

// fit дополняет или обрезает значение до ширины сегмента
func fit(value string, s Segment) string {
	r := []rune(value)
	if len(r) > s.Width {
		if s.LeftPad {
			return string(r[len(r)-s.Width:])
		}
		return string(r[:s.Width])
	}

	pad := make([]rune, s.Width-len(r))
	for i := range pad {
		pad[i] = s.Pad
	}
	if s.LeftPad {
		return string(pad) + string(r)
	}
	return string(r) + string(pad)
}
