package sqlite

import (
	"context"
	"database/sql"

	"gst-invoice-api/internal/models"
	"gst-invoice-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// InvoiceRepository implements the InvoiceRepository interface for SQLite.
// Seller snapshot, buyer snapshot, items and bank details are stored as
// JSON TEXT columns; the scalar fields used for listing and totals get
// their own columns.
type InvoiceRepository struct {
	*BaseRepository
}

// NewInvoiceRepository creates a new SQLite invoice repository
func NewInvoiceRepository(db DBTX, scope repositories.TenantScope, logger *logrus.Logger) repositories.InvoiceRepository {
	return &InvoiceRepository{
		BaseRepository: NewBaseRepository(db, "invoices", scope, logger),
	}
}

const invoiceColumns = `id, company_id, invoice_number, date,
	eway_bill_number, delivery_note, mode_of_payment, reference,
	other_references, buyer_order_no, buyer_order_date, dispatch_doc_no,
	dispatched_through, destination, terms_of_delivery,
	seller_id, seller_snapshot, use_existing_buyer, buyer_id, buyer_snapshot,
	buyer_name, buyer_address, buyer_gstin, buyer_state, buyer_state_code,
	buyer_contact, buyer_email, buyer_pan,
	items, cgst_rate, sgst_rate, igst_rate, cgst_amount, sgst_amount,
	igst_amount, total_amount, total_tax_amount, total_amount_in_words,
	total_tax_amount_in_words, bank_details, created_at, updated_at`

// Create creates a new invoice
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return repositories.ValidationError("invoice", invoice.ID, err)
	}

	r.stampScope(&invoice.CompanyID)

	args, err := invoiceArgs(invoice)
	if err != nil {
		return repositories.NewRepositoryError("create", "invoice", invoice.ID, err)
	}

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
				?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.executeExec(ctx, "create", query, args...)
	return err
}

// GetByID retrieves an invoice by ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE id = ? AND company_id = ?`

	row := r.executeQueryRow(ctx, "get_by_id", query, id, r.companyID())

	invoice, err := scanInvoice(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.NotFoundError("invoice", id)
		}
		return nil, repositories.NewRepositoryError("get_by_id", "invoice", id, err)
	}

	return invoice, nil
}

// Update replaces an existing invoice by ID, preserving its identity and
// tenant tag
func (r *InvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return repositories.ValidationError("invoice", invoice.ID, err)
	}

	invoice.UpdateTimestamp()

	args, err := invoiceArgs(invoice)
	if err != nil {
		return repositories.NewRepositoryError("update", "invoice", invoice.ID, err)
	}

	// Skip id and company_id (args[0:2]); they never change on update
	query := `
		UPDATE invoices
		SET invoice_number = ?, date = ?,
			eway_bill_number = ?, delivery_note = ?, mode_of_payment = ?,
			reference = ?, other_references = ?, buyer_order_no = ?,
			buyer_order_date = ?, dispatch_doc_no = ?, dispatched_through = ?,
			destination = ?, terms_of_delivery = ?,
			seller_id = ?, seller_snapshot = ?, use_existing_buyer = ?,
			buyer_id = ?, buyer_snapshot = ?,
			buyer_name = ?, buyer_address = ?, buyer_gstin = ?, buyer_state = ?,
			buyer_state_code = ?, buyer_contact = ?, buyer_email = ?, buyer_pan = ?,
			items = ?, cgst_rate = ?, sgst_rate = ?, igst_rate = ?,
			cgst_amount = ?, sgst_amount = ?, igst_amount = ?,
			total_amount = ?, total_tax_amount = ?, total_amount_in_words = ?,
			total_tax_amount_in_words = ?, bank_details = ?, created_at = ?,
			updated_at = ?
		WHERE id = ? AND company_id = ?`

	updateArgs := append(args[2:], invoice.ID, r.companyID())

	result, err := r.executeExec(ctx, "update", query, updateArgs...)
	if err != nil {
		return err
	}

	return r.checkRowsAffected(result, "update", invoice.ID)
}

// Delete deletes an invoice by ID
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	query := "DELETE FROM invoices WHERE id = ? AND company_id = ?"
	result, err := r.executeExec(ctx, "delete", query, id, r.companyID())
	if err != nil {
		return err
	}

	return r.checkRowsAffected(result, "delete", id)
}

// List retrieves the live invoice set, newest first
func (r *InvoiceRepository) List(ctx context.Context) ([]*models.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE company_id = ?
		ORDER BY date DESC, created_at DESC`

	rows, err := r.executeQuery(ctx, "list", query, r.companyID())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			r.logger.WithError(err).Warn("Skipping malformed invoice record")
			continue
		}
		invoices = append(invoices, invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", "invoice", "", err)
	}

	return invoices, nil
}

// Count returns the number of live invoices in scope
func (r *InvoiceRepository) Count(ctx context.Context) (int64, error) {
	query := "SELECT COUNT(*) FROM invoices WHERE company_id = ?"
	row := r.executeQueryRow(ctx, "count", query, r.companyID())

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, repositories.NewRepositoryError("count", "invoice", "", err)
	}
	return count, nil
}

// DeleteAll clears the live invoice set in scope
func (r *InvoiceRepository) DeleteAll(ctx context.Context) error {
	query := "DELETE FROM invoices WHERE company_id = ?"
	_, err := r.executeExec(ctx, "delete_all", query, r.companyID())
	return err
}

// invoiceArgs flattens an invoice into the column order of invoiceColumns
func invoiceArgs(invoice *models.Invoice) ([]interface{}, error) {
	var sellerSnapshot, buyerSnapshot, bankDetails sql.NullString
	var err error

	if invoice.Seller != nil {
		if sellerSnapshot, err = marshalColumn(invoice.Seller); err != nil {
			return nil, err
		}
	}
	if invoice.Buyer != nil {
		if buyerSnapshot, err = marshalColumn(invoice.Buyer); err != nil {
			return nil, err
		}
	}
	if invoice.BankDetails != nil {
		if bankDetails, err = marshalColumn(invoice.BankDetails); err != nil {
			return nil, err
		}
	}

	items, err := marshalColumn(invoice.Items)
	if err != nil {
		return nil, err
	}

	return []interface{}{
		invoice.ID,
		invoice.CompanyID,
		invoice.InvoiceNumber,
		invoice.Date,
		invoice.EWayBillNumber,
		invoice.DeliveryNote,
		invoice.ModeOfPayment,
		invoice.Reference,
		invoice.OtherReferences,
		invoice.BuyerOrderNo,
		invoice.BuyerOrderDate,
		invoice.DispatchDocNo,
		invoice.DispatchedThrough,
		invoice.Destination,
		invoice.TermsOfDelivery,
		invoice.SellerID,
		sellerSnapshot,
		invoice.UseExistingBuyer,
		invoice.BuyerID,
		buyerSnapshot,
		invoice.BuyerName,
		invoice.BuyerAddress,
		invoice.BuyerGSTIN,
		invoice.BuyerState,
		invoice.BuyerStateCode,
		invoice.BuyerContact,
		invoice.BuyerEmail,
		invoice.BuyerPAN,
		items,
		invoice.CGSTRate,
		invoice.SGSTRate,
		invoice.IGSTRate,
		invoice.CGSTAmount,
		invoice.SGSTAmount,
		invoice.IGSTAmount,
		invoice.TotalAmount,
		invoice.TotalTaxAmount,
		invoice.TotalAmountInWords,
		invoice.TotalTaxAmountInWords,
		bankDetails,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	}, nil
}

func scanInvoice(row rowScanner) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	var sellerSnapshot, buyerSnapshot, items, bankDetails sql.NullString

	err := row.Scan(
		&invoice.ID,
		&invoice.CompanyID,
		&invoice.InvoiceNumber,
		&invoice.Date,
		&invoice.EWayBillNumber,
		&invoice.DeliveryNote,
		&invoice.ModeOfPayment,
		&invoice.Reference,
		&invoice.OtherReferences,
		&invoice.BuyerOrderNo,
		&invoice.BuyerOrderDate,
		&invoice.DispatchDocNo,
		&invoice.DispatchedThrough,
		&invoice.Destination,
		&invoice.TermsOfDelivery,
		&invoice.SellerID,
		&sellerSnapshot,
		&invoice.UseExistingBuyer,
		&invoice.BuyerID,
		&buyerSnapshot,
		&invoice.BuyerName,
		&invoice.BuyerAddress,
		&invoice.BuyerGSTIN,
		&invoice.BuyerState,
		&invoice.BuyerStateCode,
		&invoice.BuyerContact,
		&invoice.BuyerEmail,
		&invoice.BuyerPAN,
		&items,
		&invoice.CGSTRate,
		&invoice.SGSTRate,
		&invoice.IGSTRate,
		&invoice.CGSTAmount,
		&invoice.SGSTAmount,
		&invoice.IGSTAmount,
		&invoice.TotalAmount,
		&invoice.TotalTaxAmount,
		&invoice.TotalAmountInWords,
		&invoice.TotalTaxAmountInWords,
		&bankDetails,
		&invoice.CreatedAt,
		&invoice.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if sellerSnapshot.Valid && sellerSnapshot.String != "" {
		seller := &models.Customer{}
		if err := unmarshalColumn(sellerSnapshot, seller); err != nil {
			return nil, repositories.MalformedDataError("invoice", invoice.ID, err)
		}
		invoice.Seller = seller
	}

	if buyerSnapshot.Valid && buyerSnapshot.String != "" {
		buyer := &models.Buyer{}
		if err := unmarshalColumn(buyerSnapshot, buyer); err != nil {
			return nil, repositories.MalformedDataError("invoice", invoice.ID, err)
		}
		invoice.Buyer = buyer
	}

	if err := unmarshalColumn(items, &invoice.Items); err != nil {
		return nil, repositories.MalformedDataError("invoice", invoice.ID, err)
	}

	if bankDetails.Valid && bankDetails.String != "" {
		details := &models.BankDetails{}
		if err := unmarshalColumn(bankDetails, details); err != nil {
			return nil, repositories.MalformedDataError("invoice", invoice.ID, err)
		}
		invoice.BankDetails = details
	}

	return invoice, nil
}
