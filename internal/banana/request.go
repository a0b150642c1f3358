package banana

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ironsheep/banana-tools-mcp/internal/imaging"
)

// MaxImages is the most images a single edit accepts.
const MaxImages = 3

const (
	msgNoKey      = "Error: No API Key provided, please connect to the API Key node"
	msgNoPrompt   = "Error: No Prompt provided, please connect a Prompt Selector node"
	msgNoImages   = "ERROR: BananaMainNode requires at least one input image."
	msgTooManyFmt = "ERROR: BananaMainNode expects at most %d images, but received %d."
)

var validate = validator.New()

// EditRequest is the input of a single edit.
//
// Fields are declared in the order they are checked.
type EditRequest struct {
	Key    string            `validate:"required"`
	Prompt string            `validate:"required"`
	Images []*imaging.Buffer `validate:"min=1,max=3"`
}

// check returns the first validation failure, or nil.
//
// A nil buffer inside Images is a caller bug, not an input error, and panics.
func (r EditRequest) check() *Failure {
	if err := validate.Struct(r); err != nil {
		return validationFailure(r, err)
	}
	for i, img := range r.Images {
		if img == nil {
			panic(fmt.Sprintf("banana: image %d of the edit request is nil", i+1))
		}
	}
	return nil
}

func validationFailure(r EditRequest, err error) *Failure {
	f := &Failure{Kind: KindInputValidation, Err: err}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		f.Message = "Error: " + err.Error()
		return f
	}

	switch fe := verrs[0]; fe.StructField() {
	case "Key":
		f.Message = msgNoKey
	case "Prompt":
		f.Message = msgNoPrompt
	case "Images":
		if fe.Tag() == "min" {
			f.Message = msgNoImages
		} else {
			f.Message = fmt.Sprintf(msgTooManyFmt, MaxImages, len(r.Images))
		}
	default:
		f.Message = "Error: " + fe.Error()
	}
	return f
}
