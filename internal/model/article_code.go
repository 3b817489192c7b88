package model

// ArticleCode is the CodiceArticolo pair carried by a product item: the code
// scheme (CodiceTipo, e.g. "EAN") and the code value within that scheme.
type ArticleCode struct {
	CodeType  string `json:"CodiceTipo"`
	CodeValue string `json:"CodiceValore"`
}

func (a *ArticleCode) String() string {
	return a.CodeType + ": " + a.CodeValue
}

// Validate returns the business-rule violations for the article code.
func (a *ArticleCode) Validate() []string {
	var errs []string

	if a.CodeType == "" {
		errs = append(errs, "CodiceTipo is required")
	}
	if a.CodeValue == "" {
		errs = append(errs, "CodiceValore is required")
	}

	return errs
}

// IsValid reports whether Validate returns no violations.
func (a *ArticleCode) IsValid() bool {
	return len(a.Validate()) == 0
}
