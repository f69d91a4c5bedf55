package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jayeuse/Inventory-System-sub000/internal/notify"
	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
	"github.com/jayeuse/Inventory-System-sub000/pkg/validator"
	"github.com/spf13/cobra"
)

func newArchiveCmd(a *app, archiving bool) *cobra.Command {
	var (
		reason string
		yes    bool
	)
	use, verb, done := "unarchive", "Restore", "restored"
	if archiving {
		use, verb, done = "archive", "Archive", "archived"
	}

	cmd := &cobra.Command{
		Use:   use + " <resource> <id>",
		Short: verb + " a product, category or supplier",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(reason) == "" {
				return fmt.Errorf("%w: please provide a reason with --reason", validator.ErrInvalidInput)
			}
			if err := a.requireSession(); err != nil {
				return err
			}
			name, id := args[0], args[1]
			archiver, ok := a.services.Catalog.Archiver(name)
			if !ok {
				return fmt.Errorf("%s records cannot be archived", name)
			}

			ctx := cmd.Context()
			if !yes {
				confirmed := a.notifier.Confirm(ctx, notify.ConfirmOptions{
					Title:       verb + " " + id,
					Message:     fmt.Sprintf("%s %s %s? Reason: %s", verb, name, id, reason),
					ConfirmText: verb,
					Tone:        string(notify.KindWarning),
				})
				if !confirmed {
					a.notifier.Info("Cancelled")
					return nil
				}
			}

			var err error
			if archiving {
				err = archiver.Archive(ctx, id, reason)
			} else {
				err = archiver.Unarchive(ctx, id, reason)
			}
			if err != nil {
				a.notifier.Error(fmt.Sprintf("Failed to update %s", id))
				return err
			}
			a.notifier.Success(fmt.Sprintf("%s %s successfully", id, done))
			return nil
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "reason recorded with the change (required)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// parseReceiveLine reads ITEM=QTY or ITEM=QTY@YYYY-MM-DD.
func parseReceiveLine(orderID, receivedBy, raw string) (models.ReceiveItem, error) {
	item, rest, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(item) == "" {
		return models.ReceiveItem{}, fmt.Errorf("invalid item %q, expected ITEM=QTY[@EXPIRY]", raw)
	}
	qty, expiry, _ := strings.Cut(rest, "@")
	quantity, err := strconv.Atoi(strings.TrimSpace(qty))
	if err != nil {
		return models.ReceiveItem{}, fmt.Errorf("invalid quantity in %q: %w", raw, err)
	}
	return models.ReceiveItem{
		OrderID:          orderID,
		OrderItemID:      strings.TrimSpace(item),
		QuantityReceived: quantity,
		ReceivedBy:       receivedBy,
		ExpiryDate:       strings.TrimSpace(expiry),
	}, nil
}

func newReceiveCmd(a *app) *cobra.Command {
	var (
		orderID    string
		items      []string
		receivedBy string
	)
	cmd := &cobra.Command{
		Use:     "receive",
		Short:   "Record received quantities for a supplier order",
		Example: `  pharmconsole receive --order ORD-0007 --item OI-0012=40@2026-12-31 --item OI-0013=0`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if receivedBy == "" {
				user, err := a.services.Auth.Me(ctx)
				if err != nil {
					return err
				}
				receivedBy = user.Username
			}

			req := models.ReceiveRequest{}
			for _, raw := range items {
				line, err := parseReceiveLine(orderID, receivedBy, raw)
				if err != nil {
					return err
				}
				req.Items = append(req.Items, line)
			}

			result, err := a.services.Orders.BulkReceive(ctx, req)
			if err != nil {
				a.notifier.Error("Failed to receive order")
				return err
			}
			message := result.Message
			if message == "" {
				message = fmt.Sprintf("Order %s received", orderID)
			}
			a.notifier.Success(message)
			for _, failure := range result.Errors {
				a.notifier.Warning(fmt.Sprint(failure))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&orderID, "order", "", "order id")
	cmd.Flags().StringArrayVar(&items, "item", nil, "ITEM=QTY[@YYYY-MM-DD], repeatable")
	cmd.Flags().StringVar(&receivedBy, "received-by", "", "defaults to the signed in user")
	_ = cmd.MarkFlagRequired("order")
	return cmd
}
