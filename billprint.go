package billprint

import (
	"github.com/billprint/billprint/internal/billing"
	"github.com/billprint/billprint/pkg/api"
)

type Generator = api.Generator
type Options = api.Options
type Option = api.Option
type PageOrientation = api.PageOrientation

// Statement records
type (
	Statement   = billing.Statement
	Hospital    = billing.Hospital
	Patient     = billing.Patient
	LineItem    = billing.LineItem
	Payment     = billing.Payment
	Discount    = billing.Discount
	ChargeKind  = billing.ChargeKind
	PaymentType = billing.PaymentType
)

const (
	ChargeService    = billing.ChargeService
	ChargeConsultant = billing.ChargeConsultant
	ChargeHospital   = billing.ChargeHospital
	ChargeMedicine   = billing.ChargeMedicine

	PaymentAdvance = billing.PaymentAdvance
	PaymentDeposit = billing.PaymentDeposit
	PaymentRefund  = billing.PaymentRefund
)

// LoadStatement reads and validates a YAML or JSON statement file
func LoadStatement(path string) (*Statement, error) { return billing.Load(path) }

func New(opts ...Option) *Generator              { return api.New(opts...) }
func NewWithOptions(options Options) *Generator { return api.NewWithOptions(options) }
func DefaultOptions() Options                   { return api.DefaultOptions() }

var (
	WithPageSize        = api.WithPageSize
	WithMargins         = api.WithMargins
	WithLetterhead      = api.WithLetterhead
	WithScale           = api.WithScale
	WithStatementWidth  = api.WithStatementWidth
	WithSVGWidth        = api.WithSVGWidth
	WithCurrency        = api.WithCurrency
	WithDebug           = api.WithDebug
	WithResourcePath    = api.WithResourcePath
	WithTitle           = api.WithTitle
	WithAuthor          = api.WithAuthor
	WithSubject         = api.WithSubject
	WithKeywords        = api.WithKeywords
	WithPageSizeA4      = api.WithPageSizeA4
	WithPageSizeLetter  = api.WithPageSizeLetter
	WithPageSizeLegal   = api.WithPageSizeLegal
	WithPageOrientation = api.WithPageOrientation
	WithLogger          = api.WithLogger
	WithHTTPClient      = api.WithHTTPClient
)

const (
	PageSizeA3Width  = api.PageSizeA3Width
	PageSizeA3Height = api.PageSizeA3Height
	PageSizeA4Width  = api.PageSizeA4Width
	PageSizeA4Height = api.PageSizeA4Height
	PageSizeA5Width  = api.PageSizeA5Width
	PageSizeA5Height = api.PageSizeA5Height

	PageSizeLetterWidth  = api.PageSizeLetterWidth
	PageSizeLetterHeight = api.PageSizeLetterHeight
	PageSizeLegalWidth   = api.PageSizeLegalWidth
	PageSizeLegalHeight  = api.PageSizeLegalHeight

	PageOrientationPortrait  = api.PageOrientationPortrait
	PageOrientationLandscape = api.PageOrientationLandscape
)
