package views

import (
	"slices"
	"strings"

	"warranty-console/internal/entities"
	"warranty-console/pkg/listview"
)

const (
	ProductPPF       = "ppf"
	ProductSeatCover = "seat-cover"
)

var Warranties = View[entities.Warranty]{
	Name:        "warranties",
	ResourceKey: "warranties",
	Schema: listview.Schema[entities.Warranty]{
		Fields: map[string]listview.Field[entities.Warranty]{
			"uid":            text(func(w entities.Warranty) string { return w.UID.String }),
			"status":         text(func(w entities.Warranty) string { return w.Status }),
			"product_type":   text(func(w entities.Warranty) string { return w.ProductType }),
			"product_name":   text(func(w entities.Warranty) string { return w.ProductLabel() }),
			"customer_name":  text(func(w entities.Warranty) string { return w.CustomerName.String }),
			"customer_email": text(func(w entities.Warranty) string { return w.CustomerEmail.String }),
			"customer_phone": text(func(w entities.Warranty) string { return w.CustomerPhone.String }),
			"car_make":       text(func(w entities.Warranty) string { return warrantyMake(w) }),
			"car_model":      text(func(w entities.Warranty) string { return warrantyModel(w) }),
			"store_name":     text(func(w entities.Warranty) string { return warrantyStore(w) }),
			"created_at":     timestamp(func(w entities.Warranty) string { return w.CreatedAt }),
			"purchase_date":  timestamp(func(w entities.Warranty) string { return w.PurchaseDate.String }),
		},
		Search: []string{"customer_name", "customer_email", "uid", "product_name", "car_make", "car_model"},
		Facets: map[string]listview.Facet[entities.Warranty]{
			"product_type": func(w entities.Warranty, v string) bool {
				switch v {
				case ProductPPF:
					return w.IsPPF()
				case ProductSeatCover:
					return w.IsSeatCover()
				}
				return strings.EqualFold(w.ProductType, v)
			},
		},
		DateField:   "created_at",
		DefaultSort: listview.SortSpec{Field: "created_at", Order: listview.Desc},
		ID:          func(w entities.Warranty) string { return w.Key() },
	},
	Export:       warrantyExport,
	VariantField: "product_type",
	Counts: map[string][]string{
		"status": {
			entities.WarrantyPending, entities.WarrantyPendingVendor,
			entities.WarrantyValidated, entities.WarrantyRejected,
		},
		"product_type": {ProductSeatCover, ProductPPF},
	},
}

func warrantyMake(w entities.Warranty) string {
	return listview.Coalesce(w.CarMake.String, w.Details().Text("selectedMake"))
}

func warrantyModel(w entities.Warranty) string {
	return listview.Coalesce(w.CarModel.String, w.Details().Text("selectedModel"))
}

func warrantyStore(w entities.Warranty) string {
	return listview.Coalesce(w.VendorStoreName.String, w.Details().Text("storeName"), w.StoreName.String)
}

// warrantyPhotos joins the uploaded PPF photo names in key order.
func warrantyPhotos(w entities.Warranty) string {
	photos := w.Details().Object("photos")
	keys := make([]string, 0, len(photos))
	for k := range photos {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var names []string
	for _, k := range keys {
		if s := photos.Text(k); s != "" {
			names = append(names, s)
		}
	}
	return strings.Join(names, ", ")
}

func warrantyExport(opts ExportOptions) (listview.FieldMap[entities.Warranty], string) {
	loc := opts.Location
	images := column("images", "Images", func(w entities.Warranty) string {
		return na(w.Details().Text("invoiceFileName"))
	})
	stem := "warranties"
	switch opts.Variant {
	case ProductPPF:
		images.Format = func(w entities.Warranty) string { return na(warrantyPhotos(w)) }
		stem = "ppf_warranties"
	case ProductSeatCover:
		stem = "seat_cover_warranties"
	}

	fields := listview.FieldMap[entities.Warranty]{
		column("uid", "UID", func(w entities.Warranty) string { return w.UID.String }),
		column("status", "Status", func(w entities.Warranty) string { return w.Status }),
		column("customer_name", "Customer Name", func(w entities.Warranty) string { return w.CustomerName.String }),
		column("customer_phone", "Customer Phone", func(w entities.Warranty) string { return w.CustomerPhone.String }),
		column("customer_email", "Customer Email", func(w entities.Warranty) string { return w.CustomerEmail.String }),
		column("product_type", "Product Type", func(w entities.Warranty) string { return w.ProductType }),
		column("product_name", "Product Name", func(w entities.Warranty) string {
			return na(w.Details().Text("product", "productName"), w.ProductName.String)
		}),
		column("make", "Make", func(w entities.Warranty) string { return listview.Capitalize(na(warrantyMake(w))) }),
		column("model", "Model", func(w entities.Warranty) string { return na(warrantyModel(w)) }),
		column("year", "Year", func(w entities.Warranty) string {
			return na(w.CarYear.String(), w.Details().Text("selectedYear"))
		}),
		column("vehicle_reg", "Vehicle Reg", func(w entities.Warranty) string {
			return na(w.CarReg.String, w.RegistrationNumber.String, w.Details().Text("carRegistration"))
		}),
		column("franchise_name", "Franchise Name", func(w entities.Warranty) string { return na(warrantyStore(w)) }),
		column("store_email", "Store Email", func(w entities.Warranty) string {
			return na(w.VendorStoreEmail.String, w.Details().Text("storeEmail"), w.InstallerContact.String)
		}),
		column("installer", "Installer", func(w entities.Warranty) string {
			return na(w.ManpowerNameFromDB.String, w.Details().Text("manpowerName", "installerName"))
		}),
		column("date", "Date", func(w entities.Warranty) string { return date(w.CreatedAt, loc) }),
		images,
		column("rejection_reason", "Rejection Reason", func(w entities.Warranty) string { return w.RejectionReason.String }),
	}
	return fields, stem
}
