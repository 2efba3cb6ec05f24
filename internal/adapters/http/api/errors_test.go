package api_test

import (
	"errors"
	"testing"

	"github.com/okian/pacetrend/internal/adapters/http/api"
	. "github.com/smartystreets/goconvey/convey"
)

func TestErrors(t *testing.T) {
	Convey("Given a wrapped error with a kind", t, func() {
		cause := errors.New("unexpected EOF")
		err := api.WrapKind("api.post_activities", api.ErrBadRequest, cause)

		Convey("Then it matches both the kind and the cause", func() {
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.post_activities: bad request: unexpected EOF")
		})

		Convey("And it exposes the operation", func() {
			var apiErr *api.Error
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(apiErr.Op, ShouldEqual, "api.post_activities")
		})
	})

	Convey("Given the constructors", t, func() {
		So(api.Wrap("op", nil), ShouldBeNil)
		So(api.NewKind("op", api.ErrTooLarge).Error(), ShouldEqual, "op: request too large")
		So(errors.Is(api.WrapKind("op", api.ErrUnavailable, nil), api.ErrUnavailable), ShouldBeTrue)
		So(api.Wrap("op", errors.New("boom")).Error(), ShouldEqual, "op: boom")
	})
}
