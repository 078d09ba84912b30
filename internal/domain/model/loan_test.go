package model_test

import (
	"errors"
	"math"
	"testing"

	model "github.com/okian/loanapi/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestLoanInput(t *testing.T) {
	convey.Convey("Given a LoanInput", t, func() {
		in := model.LoanInput{Age: 30, Income: 65000, LoanAmount: 20000, CreditScore: 720}

		convey.Convey("When building the feature row", func() {
			row := in.Features()

			convey.Convey("Then values follow the training column order", func() {
				convey.So(row, convey.ShouldResemble, []float64{30, 65000, 20000, 720})
				convey.So(len(row), convey.ShouldEqual, model.FeatureCount)
				convey.So(model.FeatureOrder, convey.ShouldResemble, []string{"age", "income", "loan_amount", "credit_score"})
			})

			convey.Convey("And each call returns a fresh slice", func() {
				row[0] = 99
				convey.So(in.Features()[0], convey.ShouldEqual, 30)
			})
		})

		convey.Convey("When two inputs carry the same value in different fields", func() {
			a := model.LoanInput{Age: 7}.Features()
			b := model.LoanInput{CreditScore: 7}.Features()

			convey.Convey("Then the value lands in the column of its field", func() {
				convey.So(a, convey.ShouldResemble, []float64{7, 0, 0, 0})
				convey.So(b, convey.ShouldResemble, []float64{0, 0, 0, 7})
			})
		})
	})
}

func TestIntegerField(t *testing.T) {
	convey.Convey("Given integer field conversion", t, func() {
		convey.Convey("When the value is integral", func() {
			v, err := model.IntegerField("age", 30.0)
			convey.So(err, convey.ShouldBeNil)
			convey.So(v, convey.ShouldEqual, 30)
		})

		convey.Convey("When the value has a fractional part", func() {
			_, err := model.IntegerField("age", 30.5)
			convey.So(errors.Is(err, model.ErrInvalidField), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "age")
		})

		convey.Convey("When the value is not finite", func() {
			_, err := model.IntegerField("credit_score", math.Inf(1))
			convey.So(errors.Is(err, model.ErrInvalidField), convey.ShouldBeTrue)
		})

		convey.Convey("When the value is negative", func() {
			v, err := model.IntegerField("age", -3)
			convey.So(err, convey.ShouldBeNil)
			convey.So(v, convey.ShouldEqual, -3)
		})

		convey.Convey("When the value exceeds 32 bits", func() {
			v, err := model.IntegerField("age", 3000000000)
			convey.So(err, convey.ShouldBeNil)
			convey.So(v, convey.ShouldEqual, 3000000000)
		})

		convey.Convey("When the value does not fit in an int", func() {
			_, err := model.IntegerField("credit_score", 1e19)
			convey.So(errors.Is(err, model.ErrInvalidField), convey.ShouldBeTrue)
		})
	})
}
