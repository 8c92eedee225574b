package module

import (
	"errors"
	"reflect"
	"slices"
	"sort"
	"strings"
	"sync"

	perr "remd/internal/platform/errors"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ru"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	ru_translations "github.com/go-playground/validator/v10/translations/ru"
)

var (
	vOnce sync.Once
	vInst *validator.Validate
	vUni  *ut.UniversalTranslator
)

// validatorSvc builds the singleton validator with en and ru messages keyed by env names
func validatorSvc() (*validator.Validate, *ut.UniversalTranslator) {
	vOnce.Do(func() {
		enLoc, ruLoc := en.New(), ru.New()
		vUni = ut.New(enLoc, enLoc, ruLoc)

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if tag := fld.Tag.Get("env"); tag != "" {
				return "CORE_NAPR_" + tag
			}
			return fld.Name
		})

		if trans, ok := vUni.GetTranslator("en"); ok {
			_ = en_translations.RegisterDefaultTranslations(v, trans)
		}
		if trans, ok := vUni.GetTranslator("ru"); ok {
			_ = ru_translations.RegisterDefaultTranslations(v, trans)
		}
		vInst = v
	})
	return vInst, vUni
}

// Validate checks o and returns an InvalidArgument error with messages in o.Lang (en as fallback)
func (o Options) Validate() error { return o.validate() }

// validate ignores failures on the struct fields named in skip
func (o Options) validate(skip ...string) error {
	v, uni := validatorSvc()
	err := v.Struct(o)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "napr: options")
	}

	trans, _ := uni.FindTranslator(o.Lang, "en")
	kept := verrs[:0:0]
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if slices.Contains(skip, fe.StructField()) {
			continue
		}
		kept = append(kept, fe)
		msgs = append(msgs, fe.Translate(trans))
	}
	if len(kept) == 0 {
		return nil
	}
	sort.Strings(msgs)
	return perr.Wrap(kept, perr.ErrorCodeInvalidArgument, "napr: invalid options: "+strings.Join(msgs, "; "))
}
