package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"gst-invoice-api/internal/models"
	"gst-invoice-api/internal/repositories"
)

// invoiceService implements the InvoiceService interface. It is the
// document assembler: it combines seller, resolved buyer, line items and
// computed tax amounts into the final invoice record.
type invoiceService struct {
	invoiceRepo   repositories.InvoiceRepository
	customerRepo  repositories.CustomerRepository
	productRepo   repositories.ProductRepository
	sellerService SellerService
	taxService    *TaxService
	validator     *validator.Validate
	logger        *logrus.Logger
}

// NewInvoiceService creates a new invoice service instance
func NewInvoiceService(
	invoiceRepo repositories.InvoiceRepository,
	customerRepo repositories.CustomerRepository,
	productRepo repositories.ProductRepository,
	sellerService SellerService,
	taxService *TaxService,
	logger *logrus.Logger,
) InvoiceService {
	if logger == nil {
		logger = logrus.New()
	}
	return &invoiceService{
		invoiceRepo:   invoiceRepo,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		sellerService: sellerService,
		taxService:    taxService,
		validator:     validator.New(),
		logger:        logger,
	}
}

// CreateInvoice assembles and stores a new invoice. The invoice number is
// derived from the live invoice set before assembly.
func (s *invoiceService) CreateInvoice(ctx context.Context, req *InvoiceRequest) (*models.Invoice, error) {
	if req == nil {
		return nil, fmt.Errorf("invoice request cannot be nil")
	}

	invoice := models.NewInvoice()

	existing, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for numbering: %w", err)
	}
	invoice.InvoiceNumber = NextInvoiceNumber(existing)

	if err := s.assemble(ctx, invoice, req); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return invoice, nil
}

// UpdateInvoice re-assembles an existing invoice from new form values,
// preserving its identity, invoice number, tenant tag and creation time.
func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, req *InvoiceRequest) (*models.Invoice, error) {
	if req == nil {
		return nil, fmt.Errorf("invoice request cannot be nil")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	priorItems := invoice.Items

	if err := s.assemble(ctx, invoice, req); err != nil {
		return nil, err
	}

	// Keep item identities stable across re-assembly so an update with
	// identical input changes nothing but updated_at
	for i := range invoice.Items {
		if i < len(priorItems) && priorItems[i].ProductID == invoice.Items[i].ProductID {
			invoice.Items[i].ID = priorItems[i].ID
		}
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	return invoice, nil
}

// assemble fills an invoice from form values: validation, buyer
// resolution, product snapshots, tax computation and words rendering.
// ID, CompanyID, InvoiceNumber and CreatedAt are left untouched.
func (s *invoiceService) assemble(ctx context.Context, invoice *models.Invoice, req *InvoiceRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	seller, err := s.sellerService.GetSeller(ctx)
	if err != nil {
		return ErrMissingSeller
	}

	if len(req.Items) == 0 {
		return ErrEmptyInvoice
	}

	if req.UseExistingBuyer {
		if req.BuyerID == "" {
			return ErrMissingBuyer
		}
		if _, err := s.customerRepo.GetByID(ctx, req.BuyerID); err != nil {
			return ErrMissingBuyer
		}
	} else {
		if req.BuyerName == "" {
			return ErrMissingBuyerName
		}
		if req.BuyerGSTIN != "" {
			if err := models.ValidateGSTIN(req.BuyerGSTIN); err != nil {
				return fmt.Errorf("%w: %s", ErrInvalidGSTIN, req.BuyerGSTIN)
			}
		}
		if req.BuyerPAN != "" {
			if err := models.ValidatePAN(req.BuyerPAN); err != nil {
				return fmt.Errorf("%w: %s", ErrInvalidPAN, req.BuyerPAN)
			}
		}
	}

	items := make([]models.InvoiceItem, 0, len(req.Items))
	for i, itemReq := range req.Items {
		if itemReq.ProductID == "" {
			return ErrIncompleteItem
		}

		product, err := s.productRepo.GetByID(ctx, itemReq.ProductID)
		if err != nil {
			return fmt.Errorf("%w: item %d references product %s", ErrIncompleteItem, i+1, itemReq.ProductID)
		}

		item := models.NewInvoiceItem(product, itemReq.Quantity)
		if itemReq.Price != nil {
			item.Price = *itemReq.Price
			item.RecalculateAmount()
		}
		items = append(items, *item)
	}

	if req.Date != nil {
		invoice.Date = *req.Date
	}

	invoice.EWayBillNumber = req.EWayBillNumber
	invoice.DeliveryNote = req.DeliveryNote
	invoice.ModeOfPayment = req.ModeOfPayment
	invoice.Reference = req.Reference
	invoice.OtherReferences = req.OtherReferences
	invoice.BuyerOrderNo = req.BuyerOrderNo
	invoice.BuyerOrderDate = req.BuyerOrderDate
	invoice.DispatchDocNo = req.DispatchDocNo
	invoice.DispatchedThrough = req.DispatchedThrough
	invoice.Destination = req.Destination
	invoice.TermsOfDelivery = req.TermsOfDelivery

	invoice.UseExistingBuyer = req.UseExistingBuyer
	invoice.BuyerID = ""
	invoice.BuyerName = ""
	invoice.BuyerAddress = ""
	invoice.BuyerGSTIN = ""
	invoice.BuyerState = ""
	invoice.BuyerStateCode = ""
	invoice.BuyerContact = ""
	invoice.BuyerEmail = ""
	invoice.BuyerPAN = ""

	if req.UseExistingBuyer {
		invoice.BuyerID = req.BuyerID
	} else {
		invoice.BuyerName = req.BuyerName
		invoice.BuyerAddress = req.BuyerAddress
		invoice.BuyerGSTIN = req.BuyerGSTIN
		invoice.BuyerState = req.BuyerState
		invoice.BuyerStateCode = req.BuyerStateCode
		invoice.BuyerContact = req.BuyerContact
		invoice.BuyerEmail = req.BuyerEmail
		invoice.BuyerPAN = req.BuyerPAN
	}

	invoice.Items = items

	buyer := ResolveBuyer(invoice, s.customerLookup(ctx), s.logger)
	invoice.Buyer = buyer

	invoice.SellerID = seller.ID
	invoice.Seller = seller
	invoice.BankDetails = seller.BankDetails

	buyerStateCode := buyer.StateCode
	if buyerStateCode == buyerFieldMissing {
		buyerStateCode = ""
	}
	taxes := s.taxService.ComputeTaxes(items, seller.StateCode, buyerStateCode)

	invoice.CGSTRate = taxes.CGSTRate
	invoice.SGSTRate = taxes.SGSTRate
	invoice.IGSTRate = taxes.IGSTRate
	invoice.CGSTAmount = taxes.CGSTAmount
	invoice.SGSTAmount = taxes.SGSTAmount
	invoice.IGSTAmount = taxes.IGSTAmount
	invoice.TotalAmount = taxes.Subtotal
	invoice.TotalTaxAmount = taxes.TotalTax
	invoice.TotalAmountInWords = models.AmountInWords(taxes.Subtotal)
	invoice.TotalTaxAmountInWords = models.AmountInWords(taxes.TotalTax)

	return nil
}

// GetInvoice retrieves an invoice by ID
func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	if id == "" {
		return nil, fmt.Errorf("invoice ID cannot be empty")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return invoice, nil
}

// GetInvoiceDocument returns the printable view of an invoice: the stored
// record with the buyer resolved and the active regime named. Resolution
// is side-effect-free and reproduces identical output on every call.
func (s *invoiceService) GetInvoiceDocument(ctx context.Context, id string) (*InvoiceDocument, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	buyer := ResolveBuyer(invoice, s.customerLookup(ctx), s.logger)

	sellerStateCode := ""
	if invoice.Seller != nil {
		sellerStateCode = invoice.Seller.StateCode
	}
	buyerStateCode := buyer.StateCode
	if buyerStateCode == buyerFieldMissing {
		buyerStateCode = ""
	}

	return &InvoiceDocument{
		Invoice: invoice,
		Buyer:   buyer,
		Regime:  regimeFor(sellerStateCode, buyerStateCode),
	}, nil
}

// ListInvoices retrieves the live invoice set
func (s *invoiceService) ListInvoices(ctx context.Context) ([]*models.Invoice, error) {
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// DeleteInvoice deletes an invoice by ID
func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("invoice ID cannot be empty")
	}

	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	return nil
}

// customerLookup adapts the customer repository to the resolver's lookup
// contract: a missing customer is a nil result, not an error
func (s *invoiceService) customerLookup(ctx context.Context) CustomerLookup {
	return func(id string) (*models.Customer, error) {
		customer, err := s.customerRepo.GetByID(ctx, id)
		if err != nil {
			if repositories.IsNotFound(err) {
				return nil, nil
			}
			return nil, err
		}
		return customer, nil
	}
}
