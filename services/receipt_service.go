package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/mkamau589/cowork_hub/configs"
	"github.com/mkamau589/cowork_hub/database"
	"github.com/mkamau589/cowork_hub/models"
)

// GenerateReceipt renders a PDF receipt for a completed booking, uploads it
// and stores the URL on the booking. Called on a goroutine after check-out;
// any failure is logged and the booking is left without a receipt URL.
func GenerateReceipt(bookingID string) {
	var b models.Booking
	if err := database.DB.Preload("Resource").Preload("User").First(&b, "id = ?", bookingID).Error; err != nil {
		log.Printf("🔥 Receipt: booking %s not found: %v", bookingID, err)
		return
	}
	if b.Status != models.BookingCompleted {
		log.Printf("Receipt: booking %s is %s, skipping", bookingID, b.Status)
		return
	}
	if b.ReceiptURL != nil {
		return
	}

	htmlData, err := renderReceiptHTML(b)
	if err != nil {
		log.Printf("🔥 Failed to render receipt HTML for %s: %v", bookingID, err)
		return
	}

	pdfBytes, err := printPDF(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF for %s: %v", bookingID, err)
		return
	}

	uploadURL, err := uploadReceipt(pdfBytes, b.Reference)
	if err != nil {
		log.Printf("🔥 Failed to upload receipt for %s: %v", bookingID, err)
		return
	}

	if err := database.DB.Model(&b).Update("receipt_url", uploadURL).Error; err != nil {
		log.Printf("🔥 Failed to store receipt URL for %s: %v", bookingID, err)
		return
	}
	log.Printf("✅ Receipt generated for booking %s", b.Reference)
}

func renderReceiptHTML(b models.Booking) (string, error) {
	tmpl, err := template.ParseFiles("templates/receipt.html")
	if err != nil {
		return "", err
	}

	data := struct {
		Reference    string
		MemberName   string
		ResourceName string
		ResourceType string
		Date         string
		TimeRange    string
		Hours        string
		Amount       string
		IssuedAt     string
	}{
		Reference:    b.Reference,
		MemberName:   b.User.FullName,
		ResourceName: b.Resource.Name,
		ResourceType: string(b.ResourceType),
		Date:         b.StartTime.Format("January 2, 2006"),
		TimeRange:    fmt.Sprintf("%s - %s", b.StartTime.Format(time.Kitchen), b.EndTime.Format(time.Kitchen)),
		Hours:        fmt.Sprintf("%.2f", b.Duration().Hours()),
		Amount:       fmt.Sprintf("%.2f", b.TotalAmount),
		IssuedAt:     time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func printPDF(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceipt(fileBytes []byte, reference string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s", reference),
		Folder:       "cowork_hub_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
