package ldb

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/samber/oops"
)

// Elements the service declares as arrays. They decode to lists even when
// only one is present, so callers can range over them unconditionally.
var arrayElements = map[string]bool{
	"service":          true,
	"callingPoint":     true,
	"callingPointList": true,
	"message":          true,
	"location":         true,
}

// Field is one named child of an Object.
type Field struct {
	Name  string
	Value any
}

// Object is a typed SOAP response node. Values are strings, nil for
// xsi:nil elements, nested objects or []any for repeated elements.
type Object struct {
	Fields []Field
}

// Get returns the value of the named field.
func (o *Object) Get(name string) (any, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

func (o *Object) add(name string, value any) {
	for i, f := range o.Fields {
		if f.Name != name {
			continue
		}
		if list, ok := f.Value.([]any); ok {
			o.Fields[i].Value = append(list, value)
		} else {
			o.Fields[i].Value = []any{f.Value, value}
		}
		return
	}

	if arrayElements[name] {
		value = []any{value}
	}
	o.Fields = append(o.Fields, Field{Name: name, Value: value})
}

// Fault is a SOAP fault returned by the service.
type Fault struct {
	Code   string
	String string
}

func (f *Fault) Error() string {
	return "soap fault " + f.Code + ": " + f.String
}

// Decode reads a SOAP envelope and returns the result object wrapped by the
// operation response element, or a *Fault.
func Decode(r io.Reader) (*Object, error) {
	d := xml.NewDecoder(r)

	if err := seek(d, "Body"); err != nil {
		return nil, err
	}

	start, err := nextStart(d)
	if err != nil {
		return nil, oops.With("context", "empty soap body").Wrap(err)
	}

	value, err := decodeElement(d, start)
	if err != nil {
		return nil, oops.With("element", start.Name.Local, "context", "failed to decode soap body").Wrap(err)
	}

	response, _ := value.(*Object)
	if start.Name.Local == "Fault" {
		fault := &Fault{}
		if response != nil {
			fault.Code = stringField(response, "faultcode")
			fault.String = stringField(response, "faultstring")
		}
		return nil, fault
	}

	// <GetDepartureBoardResponse><GetStationBoardResult>...</GetStationBoardResult></...>
	if response == nil || len(response.Fields) == 0 {
		return nil, oops.With("element", start.Name.Local).Errorf("soap response carries no result")
	}
	result, ok := response.Fields[0].Value.(*Object)
	if !ok {
		return nil, oops.With("element", start.Name.Local, "result", response.Fields[0].Name).Errorf("soap result is not a structure")
	}
	return result, nil
}

func seek(d *xml.Decoder, local string) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return oops.With("element", local).Errorf("element not found in soap envelope")
		}
		if err != nil {
			return oops.With("context", "malformed soap envelope").Wrap(err)
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == local {
			return nil
		}
	}
}

func nextStart(d *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := d.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, nil
		case xml.EndElement:
			return xml.StartElement{}, io.ErrUnexpectedEOF
		}
	}
}

func decodeElement(d *xml.Decoder, start xml.StartElement) (any, error) {
	var (
		obj  *Object
		text strings.Builder
	)

	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(d, t)
			if err != nil {
				return nil, err
			}
			if obj == nil {
				obj = &Object{}
			}
			obj.add(t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if obj != nil {
				return obj, nil
			}
			if isNil(start) {
				return nil, nil
			}
			return strings.TrimSpace(text.String()), nil
		}
	}
}

func isNil(start xml.StartElement) bool {
	for _, attr := range start.Attr {
		if attr.Name.Local == "nil" && attr.Value == "true" {
			return true
		}
	}
	return false
}

func stringField(o *Object, name string) string {
	v, _ := o.Get(name)
	s, _ := v.(string)
	return s
}
