package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
	"tharwa/internal/pagination"
	"tharwa/internal/services"
)

// ContractHandler handles tenancy-contract requests.
type ContractHandler struct {
	contractService services.ContractServicer
	auditService    services.AuditServicer
}

// NewContractHandler creates a new ContractHandler.
func NewContractHandler(contractService services.ContractServicer, auditService services.AuditServicer) *ContractHandler {
	return &ContractHandler{contractService: contractService, auditService: auditService}
}

// CreateContractRequest represents the request payload for creating a tenancy contract.
type CreateContractRequest struct {
	PropertyID  uint      `json:"property_id" binding:"required"`
	TenantName  string    `json:"tenant_name" binding:"required,min=1,max=200"`
	AnnualRent  int64     `json:"annual_rent" binding:"required,gt=0"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	ChequeCount int       `json:"cheque_count" binding:"required,min=1,max=12"`
}

// UpdateChequeStatusRequest represents the request payload for a cheque status change.
type UpdateChequeStatusRequest struct {
	Status models.ChequeStatus `json:"status" binding:"required,cheque_status"`
}

// CreateContract handles creating a tenancy contract with its cheques.
// @Summary     Create tenancy contract
// @Description Record a tenancy agreement and generate its post-dated rent cheques
// @Tags        contracts
// @Accept      json
// @Produce     json
// @Param       request body CreateContractRequest true "Contract details"
// @Success     201 {object} models.TenancyContract "Contract created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contracts [post]
func (h *ContractHandler) CreateContract(c *gin.Context) {
	var req CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	contract, err := h.contractService.CreateContract(req.PropertyID, req.TenantName, req.AnnualRent, req.StartDate, req.EndDate, req.ChequeCount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_CONTRACT", "contract", contract.ID, c.ClientIP(),
		map[string]interface{}{"property_id": req.PropertyID, "annual_rent": req.AnnualRent, "cheques": req.ChequeCount})

	c.JSON(http.StatusCreated, gin.H{"contract": contract})
}

// GetContracts handles listing tenancy contracts.
// @Summary     List contracts
// @Description Get a paginated list of tenancy contracts with their cheques
// @Tags        contracts
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.TenancyContract] "Paginated contracts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contracts [get]
func (h *ContractHandler) GetContracts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.contractService.GetContracts(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetContract handles fetching a single contract.
// @Summary     Get contract
// @Description Get a tenancy contract by ID, including its cheques
// @Tags        contracts
// @Produce     json
// @Param       id path int true "Contract ID"
// @Success     200 {object} models.TenancyContract "Contract"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Contract not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contracts/{id} [get]
func (h *ContractHandler) GetContract(c *gin.Context) {
	contractID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	contract, err := h.contractService.GetContractByID(contractID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contract": contract})
}

// UpdateChequeStatus handles a cheque clearing-state change.
// @Summary     Update cheque status
// @Description Mark one contract cheque cleared or bounced
// @Tags        contracts
// @Accept      json
// @Produce     json
// @Param       id        path int                       true "Contract ID"
// @Param       chequeId  path int                       true "Cheque ID"
// @Param       request   body UpdateChequeStatusRequest true "New status"
// @Success     200 {object} models.Cheque "Updated cheque"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Cheque not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contracts/{id}/cheques/{chequeId} [put]
func (h *ContractHandler) UpdateChequeStatus(c *gin.Context) {
	contractID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	chequeID, err := parsePathID(c, "chequeId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateChequeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cheque, err := h.contractService.UpdateChequeStatus(contractID, chequeID, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_CHEQUE_STATUS", "cheque", chequeID, c.ClientIP(),
		map[string]interface{}{"contract_id": contractID, "status": string(req.Status)})

	c.JSON(http.StatusOK, gin.H{"cheque": cheque})
}

// DeleteContract handles deleting a contract and its cheques.
// @Summary     Delete contract
// @Description Delete a tenancy contract together with its cheques
// @Tags        contracts
// @Produce     json
// @Param       id path int true "Contract ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Contract not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contracts/{id} [delete]
func (h *ContractHandler) DeleteContract(c *gin.Context) {
	contractID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.contractService.DeleteContract(contractID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_CONTRACT", "contract", contractID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted"})
}
