package models

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Identity columns must share their unique index with the delete flag,
// so a deleted row frees its email/number/code for reuse while live
// duplicates stay blocked.
func TestUniqueIdentityIndexesScopedToLiveRows(t *testing.T) {
	cases := []struct {
		name  string
		model interface{}
		field string
		index string
	}{
		{"guest email", Guest{}, "Email", "udx_guests_email_live"},
		{"room number", Room{}, "RoomNumber", "udx_rooms_number_live"},
		{"room type code", RoomType{}, "Code", "udx_room_types_code_live"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			typ := reflect.TypeOf(tc.model)

			field, ok := typ.FieldByName(tc.field)
			require.True(t, ok)
			assert.Contains(t, field.Tag.Get("gorm"), "uniqueIndex:"+tc.index)

			deleted, ok := typ.FieldByName("DeletedAt")
			require.True(t, ok)
			assert.Contains(t, deleted.Tag.Get("gorm"), "uniqueIndex:"+tc.index)

			// the flag type stores 0 for live rows so the composite
			// index still rejects live duplicates
			assert.True(t, strings.HasSuffix(deleted.Type.String(), "soft_delete.DeletedAt"),
				"DeletedAt on %s must use the zero-valued delete flag, got %s", typ.Name(), deleted.Type)
		})
	}
}
